// Package tips holds the fixed study-tip table and its lookups.
package tips

import "math/rand"

type Category string

const (
	CategoryFocus        Category = "focus"
	CategoryMemory       Category = "memory"
	CategoryProductivity Category = "productivity"
	CategoryWellbeing    Category = "wellbeing"
)

type Tip struct {
	ID       string
	Title    string
	Content  string
	Category Category
}

var All = []Tip{
	{
		ID:       "1",
		Title:    "The Pomodoro Technique",
		Content:  "Study for 25 minutes, then take a 5-minute break. After 4 cycles, take a longer 15-30 minute break. This helps maintain focus and prevents burnout.",
		Category: CategoryProductivity,
	},
	{
		ID:       "2",
		Title:    "Active Recall",
		Content:  "Instead of re-reading notes, test yourself on the material. Try to recall information from memory before checking your notes. This strengthens neural pathways.",
		Category: CategoryMemory,
	},
	{
		ID:       "3",
		Title:    "Spaced Repetition",
		Content:  "Review material at increasing intervals: 1 day, 3 days, 1 week, 2 weeks. This leverages how your brain naturally consolidates memories.",
		Category: CategoryMemory,
	},
	{
		ID:       "4",
		Title:    "Eliminate Distractions",
		Content:  "Put your phone in another room, use website blockers, and find a quiet study space. Even small distractions can reduce learning efficiency by up to 40%.",
		Category: CategoryFocus,
	},
	{
		ID:       "5",
		Title:    "Teach What You Learn",
		Content:  "Explaining concepts to others (or even a rubber duck) helps identify gaps in your understanding and reinforces your knowledge.",
		Category: CategoryMemory,
	},
	{
		ID:       "6",
		Title:    "Get Enough Sleep",
		Content:  "Sleep is crucial for memory consolidation. Aim for 7-9 hours per night, especially before exams. Pulling all-nighters is counterproductive.",
		Category: CategoryWellbeing,
	},
	{
		ID:       "7",
		Title:    "Stay Hydrated",
		Content:  "Dehydration can impair cognitive function. Keep a water bottle at your study desk and drink regularly throughout your study session.",
		Category: CategoryWellbeing,
	},
	{
		ID:       "8",
		Title:    "Create a Study Schedule",
		Content:  "Plan your study sessions in advance. Treat them like important appointments. Consistency builds habits and reduces procrastination.",
		Category: CategoryProductivity,
	},
	{
		ID:       "9",
		Title:    "Use Visual Aids",
		Content:  "Mind maps, diagrams, and color-coded notes can help you understand and remember complex information better than plain text.",
		Category: CategoryMemory,
	},
	{
		ID:       "10",
		Title:    "Take Short Walks",
		Content:  "A 10-15 minute walk between study sessions can boost creativity and help consolidate what you've learned.",
		Category: CategoryWellbeing,
	},
	{
		ID:       "11",
		Title:    "Study in Chunks",
		Content:  "Break large topics into smaller, manageable chunks. Master one chunk before moving to the next. This prevents overwhelm.",
		Category: CategoryProductivity,
	},
	{
		ID:       "12",
		Title:    "Use Background Music Wisely",
		Content:  "Instrumental music or ambient sounds can help some people focus. Avoid lyrics as they compete for your brain's language processing.",
		Category: CategoryFocus,
	},
	{
		ID:       "13",
		Title:    "Practice Under Test Conditions",
		Content:  "Simulate exam conditions during practice. Time yourself, work without notes, and create a quiet environment. This reduces test anxiety.",
		Category: CategoryProductivity,
	},
	{
		ID:       "14",
		Title:    "Connect New to Old",
		Content:  "Link new information to concepts you already know. Building on existing knowledge creates stronger, more accessible memories.",
		Category: CategoryMemory,
	},
	{
		ID:       "15",
		Title:    "Start with the Hardest Task",
		Content:  "Tackle difficult subjects when your mental energy is highest, usually in the morning. Save easier tasks for when you're tired.",
		Category: CategoryFocus,
	},
}

// Random picks a tip uniformly from the table using the given source, so
// callers (and tests) control determinism.
func Random(rng *rand.Rand) Tip {
	return All[rng.Intn(len(All))]
}

// ByCategory returns every tip in the given category, table order.
func ByCategory(c Category) []Tip {
	var out []Tip
	for _, t := range All {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}
