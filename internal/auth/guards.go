package auth

import "github.com/rinsh4dd/e-com/internal/session"

// RequireIdentity admits any signed-in identity.
func RequireIdentity(id *session.Identity) error {
	if id == nil || id.ID == "" {
		return ErrLoginRequired
	}
	return nil
}

// RequireAdmin admits identities with the admin role.
func RequireAdmin(id *session.Identity) error {
	if err := RequireIdentity(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// RequireAnonymous admits only visitors who are not signed in, as the login
// and registration pages do.
func RequireAnonymous(id *session.Identity) error {
	if id != nil && id.ID != "" {
		return ErrAlreadySignedIn
	}
	return nil
}
