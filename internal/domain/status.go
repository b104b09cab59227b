package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Status is a user-facing message scoped to the form or region that triggered it
type Status struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func InfoStatus(msg string) Status {
	return Status{Message: msg, Severity: SeverityInfo}
}

func SuccessStatus(msg string) Status {
	return Status{Message: msg, Severity: SeveritySuccess}
}

func ErrorStatus(msg string) Status {
	return Status{Message: msg, Severity: SeverityError}
}
