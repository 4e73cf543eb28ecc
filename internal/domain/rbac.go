package domain

// EnforceRequest is one authorization question: may UserID perform Action on
// Resource. Policies are evaluated inside the user's own domain.
type EnforceRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const (
	ResourceProfile    = "profile"
	ResourceAddress    = "address"
	ResourceClient     = "client"
	ResourceEmployee   = "employee"
	ResourceProcess    = "process"
	ResourcePacket     = "diamond_packet"
	ResourceAssignment = "assignment"
	ResourceReport     = "report"
	ResourceActivity   = "activity"
)

// Resources lists every resource an owner is granted on their own data.
var Resources = []string{
	ResourceProfile,
	ResourceAddress,
	ResourceClient,
	ResourceEmployee,
	ResourceProcess,
	ResourcePacket,
	ResourceAssignment,
	ResourceReport,
	ResourceActivity,
}

var Actions = []string{ActionRead, ActionCreate, ActionUpdate, ActionDelete}
