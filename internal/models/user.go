package models

// User is the account summary returned by the login endpoint and kept in
// the session.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Country   string `json:"country"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login endpoint's success shape.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Registration is the register request body.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Country   string `json:"country"`
	Password  string `json:"password"`
}

// Profile is the editable part of an account.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Country   string `json:"country"`
}

// ProfileUpdate is the update-profile request body. An empty NewPassword
// keeps the current password.
type ProfileUpdate struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Country         string `json:"country"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Country is one entry of the countries endpoint.
type Country struct {
	Name string `json:"name"`
}
