package gorm

// StatementResult is the outcome of a single statement of a multi-statement
// operation.
type StatementResult struct {
	Statement string
	Err       error
}

type StatementResults []StatementResult

// Err returns the error of the first failed statement. Later failures are
// ignored.
func (r StatementResults) Err() error {
	for _, res := range r {
		if res.Err != nil {
			return res.Err
		}
	}

	return nil
}

// Failed returns the number of failed statements.
func (r StatementResults) Failed() int {
	failed := 0
	for _, res := range r {
		if res.Err != nil {
			failed++
		}
	}

	return failed
}
