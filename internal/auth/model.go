package auth

// Role names carried in the "role" token claim.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
)

// User represents an operator account able to log in to the service.
type User struct {
	ID           uint   `gorm:"primaryKey;column:id" json:"id"`
	Email        string `gorm:"type:varchar(255);column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);column:password_hash;not null" json:"-"`
	Role         string `gorm:"type:varchar(50);column:role;not null" json:"role"`
}

func (u *User) TableName() string {
	return "users"
}

// LoginRequest is the credentials payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and role the client stores
// under its "token" and "role" keys.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
