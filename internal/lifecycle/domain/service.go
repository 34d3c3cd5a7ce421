package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Service moves clients through their lifecycle stages. Each transition runs
// in its own transaction and fails when the client is not in a stage the
// transition accepts.
type Service interface {
	// SubmitInquiry marks the client's inquiry as submitted and in review.
	SubmitInquiry(ctx context.Context, clientID, inquiryID snowflake.ID) error
}

var ErrInvalidTransition = errors.New("invalid lifecycle transition")
