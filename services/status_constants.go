package services

// StatusIDs holds the behaviorally significant row ids of the status tables.
// These values are fixed in production data; tests substitute their own.
type StatusIDs struct {
	// Service status in which documents are being collected; the only
	// status the automatic advancement operates on
	CollectingDocuments int
	// Document status meaning "aportado": the document satisfies its
	// requirement
	ApprovedDocument int
	// Service status a service moves to once the client responds to an
	// incidence; staff decide the next step from there
	IncidenceUnderReview int
	// Target status for services whose type has no catalog rows (data
	// created before the catalog table existed)
	LegacyFallbackTarget int
}

// DefaultStatusIDs returns the production status ids
func DefaultStatusIDs() StatusIDs {
	return StatusIDs{
		CollectingDocuments:  1,
		ApprovedDocument:     3,
		IncidenceUnderReview: 19,
		LegacyFallbackTarget: 8,
	}
}
