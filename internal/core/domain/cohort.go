package domain

// Cohort groups alumni. Alumni mirrors exactly the set of users whose cohort
// reference points at this cohort; it is only changed as a side effect of
// moving or removing a user.
type Cohort struct {
	ID     string   `json:"_id"`
	Name   string   `json:"cohortName"`
	Alumni []string `json:"alumni"`
}

// HasAlumnus reports whether userID is a member of the cohort.
func (c *Cohort) HasAlumnus(userID string) bool {
	for _, id := range c.Alumni {
		if id == userID {
			return true
		}
	}
	return false
}
