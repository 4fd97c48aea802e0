package portfolio

import "time"

// Stats summarizes a snapshot.
type Stats struct {
	TotalProjects     int        `json:"totalProjects"`
	FeaturedProjects  int        `json:"featuredProjects"`
	TotalSkills       int        `json:"totalSkills"`
	SkillCategories   int        `json:"skillCategories"`
	AverageSkillLevel float64    `json:"averageSkillLevel"`
	LastUpdated       *time.Time `json:"lastUpdated"`
}

// SkillLevel is a skill without its category, as listed inside a category group.
type SkillLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// CategoryGroup is one category with its skills in list order.
type CategoryGroup struct {
	Category string
	Skills   []Skill
}

// GroupSkills groups skills by category. Categories keep the order in which
// they first appear.
func GroupSkills(skills []Skill) []CategoryGroup {
	var (
		groups []CategoryGroup
		index  = make(map[string]int)
	)

	for _, sk := range skills {
		i, ok := index[sk.Category]
		if !ok {
			i = len(groups)
			index[sk.Category] = i
			groups = append(groups, CategoryGroup{Category: sk.Category})
		}

		groups[i].Skills = append(groups[i].Skills, sk)
	}

	return groups
}

// ComputeStats derives the statistics of a snapshot.
func ComputeStats(s Snapshot, lastUpdated *time.Time) Stats {
	st := Stats{
		TotalProjects: len(s.Projects),
		TotalSkills:   len(s.Skills),
		LastUpdated:   lastUpdated,
	}

	for _, p := range s.Projects {
		if p.Featured {
			st.FeaturedProjects++
		}
	}

	st.SkillCategories = len(GroupSkills(s.Skills))

	if len(s.Skills) > 0 {
		var sum int
		for _, sk := range s.Skills {
			sum += sk.Level
		}

		st.AverageSkillLevel = float64(sum) / float64(len(s.Skills))
	}

	return st
}
