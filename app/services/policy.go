package services

import (
	"inkwell/app/auth"
	"inkwell/app/models"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionEdit    Action = "edit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
	ActionListAll Action = "list_all"
)

// Allow is the single authorization decision point. Every operation
// routes its role and ownership check through here so the rules cannot
// drift between endpoints. The post argument is the target record, nil
// for actions without one.
func Allow(actor *auth.Identity, action Action, post *models.Post) bool {
	switch action {
	case ActionSubmit:
		return actor != nil
	case ActionEdit:
		if actor == nil {
			return false
		}
		return actor.IsAdmin() || (post != nil && post.UserID == actor.ID)
	case ActionApprove, ActionReject, ActionDelete, ActionListAll:
		return actor.IsAdmin()
	default:
		return false
	}
}
