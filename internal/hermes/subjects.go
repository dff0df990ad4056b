package hermes

const (
	SubjectProblemRequest   = "optimizer.problem.request"
	SubjectDecisionRejected = "optimizer.decision.rejected"

	StreamName   = "OPTIMIZER_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectDecisionSolved(decisionID string) string {
	return "optimizer.decision." + decisionID + ".solved"
}
