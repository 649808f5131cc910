package employee

import "time"

type Employee struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	BadgeNo    string    `json:"badgeNo"`
	Username   string    `json:"username"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	JoinDate   time.Time `json:"joinDate"`
	PhotoPath  string    `json:"photoPath,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e Employee) FullName() string {
	name := e.FirstName
	if e.LastName != "" {
		if name != "" {
			name += " "
		}
		name += e.LastName
	}
	if name == "" {
		return e.Username
	}
	return name
}

// NewAccount carries everything needed to provision a login identity
// together with its employee profile.
type NewAccount struct {
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Password   string
	Phone      string
	Address    string
	Position   string
	Department string
	Salary     float64
	JoinDate   time.Time
	PhotoPath  string
}

type ProfileUpdate struct {
	Phone      string
	Address    string
	Position   string
	Department string
	Salary     float64
	JoinDate   time.Time
	PhotoPath  string
}
