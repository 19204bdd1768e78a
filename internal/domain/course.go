package domain

import "time"

// Course is the read model of a course consumed by the scheduling core.
// Courses are owned and mutated by another service; this one only reads
// the fields needed for scheduling and authorization.
type Course struct {
	ID         int64
	Name       string
	TrainerID  *int64
	CompanyIDs []int64
	TraineeIDs []int64
	ArchivedAt *time.Time
}

// IsArchived returns true if the course has been archived.
// Archived courses forbid slot mutation and attendance changes.
func (c *Course) IsArchived() bool {
	return c.ArchivedAt != nil
}

// HasCompany returns true if the company belongs to the course
func (c *Course) HasCompany(companyID int64) bool {
	for _, id := range c.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// HasAnyCompany returns true if at least one of the companies belongs to the course
func (c *Course) HasAnyCompany(companyIDs []int64) bool {
	for _, id := range companyIDs {
		if c.HasCompany(id) {
			return true
		}
	}
	return false
}

// HasTrainee returns true if the trainee is on the course roster
func (c *Course) HasTrainee(traineeID int64) bool {
	for _, id := range c.TraineeIDs {
		if id == traineeID {
			return true
		}
	}
	return false
}

// IsTrainer returns true if the user is the course trainer
func (c *Course) IsTrainer(userID int64) bool {
	return c.TrainerID != nil && *c.TrainerID == userID
}
