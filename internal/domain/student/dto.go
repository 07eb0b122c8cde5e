// internal/domain/student/dto.go
package student

// CreateStudentRequest registered by the warden
type CreateStudentRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	RollNumber   string `json:"rollNumber,omitempty"`
	Room         string `json:"room,omitempty"`
	Phone        string `json:"phone,omitempty"`
	GuardianName string `json:"guardianName,omitempty"`
}

// UpdateStudentRequest partial update
type UpdateStudentRequest struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	RollNumber   string `json:"rollNumber,omitempty"`
	Room         string `json:"room,omitempty"`
	Phone        string `json:"phone,omitempty"`
	GuardianName string `json:"guardianName,omitempty"`
}

// RegisterParentRequest links a parent account to a student
type RegisterParentRequest struct {
	StudentID    string `json:"studentId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Relationship string `json:"relationship,omitempty"`
}
