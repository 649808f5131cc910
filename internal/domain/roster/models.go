package roster

import "time"

// Developer is a public team roster entry. It is independent of the
// employee table so the public page can list contributors who are not
// on payroll.
type Developer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	GithubURL string    `json:"githubUrl,omitempty"`
	Rank      int       `json:"rank"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Input struct {
	Name      string
	Role      string
	Bio       string
	PhotoURL  string
	GithubURL string
	Rank      int
	IsActive  bool
}
