// Package model holds the wire types exchanged with the Video Unpack
// backend. The backend owns every record here; the client only reads them.
package model

// Person carries the registration fields for a new account holder.
type Person struct {
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

// User carries the credentials for a new account.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SignUpRequest is the body of POST /api/v1/auth/signup.
type SignUpRequest struct {
	Person Person `json:"person"`
	User   User   `json:"user"`
}

// SignInRequest is the body of POST /api/v1/auth/signin.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthUser is the optional identity echo in an auth response.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the body returned by both auth endpoints.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        *AuthUser `json:"user,omitempty"`
}

// VideoJob is one processing job as listed by GET /api/v1/videos.
// Status is a free-form string; use ParseStatus to classify it.
type VideoJob struct {
	ID                   string `json:"id"`
	JobRef               string `json:"job_ref"`
	ClientIdentification string `json:"client_identification"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
	Filename             string `json:"filename,omitempty"`
	Filetype             string `json:"filetype,omitempty"`
}

// VideoUploadResponse is the body returned by POST /api/v1/videos.
type VideoUploadResponse struct {
	ID                   string `json:"id"`
	JobRef               string `json:"job_ref"`
	Filename             string `json:"filename"`
	Filetype             string `json:"filetype"`
	ClientIdentification string `json:"client_identification"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}
