package constants

const (
	Upload    = "UPLOAD"
	Delete    = "DELETE"
	Request   = "REQUEST"
	Approve   = "APPROVE"
	Reject    = "REJECT"
	Return    = "RETURN"
	Reconcile = "RECONCILE"
)
