// Package auth implements the simulated sign-in form.
//
// Nothing here verifies credentials. The form only derives a display identity
// that the session store keeps for the chat view; treat it as a placeholder,
// not a security boundary.
package auth

import (
	"strings"

	"github.com/diogo/uplyft/internal/models"
)

// Mode selects which variant of the form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// String returns the tab label for the mode
func (m Mode) String() string {
	if m == ModeSignup {
		return "Sign Up"
	}
	return "Login"
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeSignup {
		return ModeLogin
	}
	return ModeSignup
}

// SubmitLabel returns the label of the submit button
func (m Mode) SubmitLabel() string {
	if m == ModeSignup {
		return "Create Your Account"
	}
	return "Sign In to Continue"
}

// Field identifies a form input
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldEmail
	FieldPassword
)

// String returns the placeholder text of the field
func (f Field) String() string {
	switch f {
	case FieldName:
		return "Full Name"
	case FieldEmail:
		return "Email Address"
	case FieldPassword:
		return "Password"
	default:
		return ""
	}
}

// Fields returns the inputs shown in mode, in tab order
func (m Mode) Fields() []Field {
	if m == ModeSignup {
		return []Field{FieldName, FieldEmail, FieldPassword}
	}
	return []Field{FieldEmail, FieldPassword}
}

// Form holds the values typed into the landing view.
// Name survives mode toggles, mirroring a shared form state.
type Form struct {
	Mode     Mode
	Name     string
	Email    string
	Password string
}

// Value returns the current value of f
func (f Form) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	default:
		return ""
	}
}

// Missing returns the first required field that is still empty, or FieldNone.
// Required means shown in the current mode; the emptiness check is literal,
// the same as an HTML required attribute.
func (f Form) Missing() Field {
	for _, field := range f.Mode.Fields() {
		if f.Value(field) == "" {
			return field
		}
	}
	return FieldNone
}

// Identity derives the display identity written at sign-in.
// The name is the explicit name when one was typed, else the local part of the email.
func (f Form) Identity() models.Identity {
	name := f.Name
	if name == "" {
		name = LocalPart(f.Email)
	}
	return models.Identity{Name: name, Email: f.Email}
}

// Federated returns the fixed identity used by "Continue with Google"
func Federated() models.Identity {
	return models.Identity{
		Name:  models.FederatedUserName,
		Email: models.FederatedUserEmail,
	}
}

// LocalPart returns the text before the first '@', or the whole address
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
