package metrics

const Namespace = "instants"

const (
	LabelStatus = "status"
	LabelStep   = "step"
)

const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusFailed  = "failed"
	StatusSuccess = "success"
	StatusInvalid = "invalid"
)
