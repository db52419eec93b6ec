// Package routing names the navigation targets of the client.
package routing

import "github.com/dmitrijs2005/learnquest/internal/client/models"

type Destination string

const (
	InstructorDashboard Destination = "/dashboard/instructor"
	AdminDashboard      Destination = "/dashboard/admin"
	LearnerDashboard    Destination = "/dashboard/learner"
	Login               Destination = "/login"
	Signup              Destination = "/signup"
)

// DashboardFor maps every role, including unknown and empty ones, to a
// dashboard. Anything that is not instructor or admin lands on learner.
func DashboardFor(role models.Role) Destination {
	switch role {
	case models.RoleInstructor:
		return InstructorDashboard
	case models.RoleAdmin:
		return AdminDashboard
	default:
		return LearnerDashboard
	}
}
