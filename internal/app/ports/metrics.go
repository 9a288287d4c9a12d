package ports

import "campaignmap/internal/domain/campaign"

type MovementMetrics interface {
	RecordMove(kind campaign.MoveKind)
	RecordRejection(kind campaign.MoveKind, reason string)
	RecordFailure(kind campaign.MoveKind)
}
