package auth

// Decision is the outcome of a permission check. Reason carries a
// user-correctable message when the check fails, so callers can show
// corrective copy instead of a bare 403.
type Decision struct {
	Allowed bool
	Reason  string
}

// PermissionError is the error form of a denied Decision.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return e.Reason }

// Err converts a denied decision into a PermissionError, nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &PermissionError{Reason: d.Reason}
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// CanManagePost decides whether a session may create, edit or delete a post
// whose author profile is linkedAuthorID (the caller's own linked author) and
// postAuthorID (the author the post belongs to). Editors are restricted to
// posts linked to their own author profile; an editor with no linked profile
// is blocked with corrective copy rather than a hard failure.
func CanManagePost(s *Session, linkedAuthorID, postAuthorID string) Decision {
	if s == nil {
		return deny("You must be signed in.")
	}
	if s.Role == RoleAdmin {
		return allow()
	}
	if linkedAuthorID == "" {
		return deny("Your account is not linked to an author profile yet. Ask an administrator to link one before writing posts.")
	}
	if postAuthorID != linkedAuthorID {
		return deny("You can only manage posts written under your own author profile.")
	}
	return allow()
}

// CanManageSite gates the CMS singleton, authors and subscriber list.
// Admin only.
func CanManageSite(s *Session) Decision {
	if s == nil {
		return deny("You must be signed in.")
	}
	if s.Role != RoleAdmin {
		return deny("Administrator access is required for site settings.")
	}
	return allow()
}

// CanManageMedia gates uploads and deletions in the media library. Both
// roles may manage media; editors need it for their own covers and avatars.
func CanManageMedia(s *Session) Decision {
	if s == nil {
		return deny("You must be signed in.")
	}
	return allow()
}
