// Package wire converts the messages peers exchange during a game to and
// from their protobuf encoding in proto/village.proto.
package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/proto"

	"github.com/Bokan96/VillagePillage/internal/domain"
	pb "github.com/Bokan96/VillagePillage/proto"
)

var ErrMalformed = errors.New("malformed message")

var marshalOpts = proto.MarshalOptions{Deterministic: true}

// MarshalSubmission encodes a submission.
func MarshalSubmission(s domain.RoundSubmission) []byte {
	b, _ := marshalOpts.Marshal(submissionToProto(s))
	return b
}

// UnmarshalSubmission decodes a submission. Unknown fields are skipped.
func UnmarshalSubmission(b []byte) (domain.RoundSubmission, error) {
	msg := &pb.RoundSubmission{}
	if err := proto.Unmarshal(b, msg); err != nil {
		return domain.RoundSubmission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return submissionFromProto(msg)
}

// submissionToProto converts a submission to its wire message.
func submissionToProto(s domain.RoundSubmission) *pb.RoundSubmission {
	return &pb.RoundSubmission{
		RoundNumber: s.Round,
		PlayerId:    uint32(s.Seat),
		LeftCardId:  s.LeftCardID,
		RightCardId: s.RightCardID,
	}
}

// submissionFromProto validates and converts a wire submission.
func submissionFromProto(msg *pb.RoundSubmission) (domain.RoundSubmission, error) {
	if msg.GetPlayerId() > math.MaxUint8 {
		return domain.RoundSubmission{}, fmt.Errorf("player_id %d: %w", msg.GetPlayerId(), domain.ErrInvalidSeat)
	}
	return domain.RoundSubmission{
		Round:       msg.GetRoundNumber(),
		Seat:        uint8(msg.GetPlayerId()),
		LeftCardID:  msg.GetLeftCardId(),
		RightCardID: msg.GetRightCardId(),
	}, nil
}

// MarshalStart encodes a start signal.
func MarshalStart(s domain.StartSignal) []byte {
	b, _ := marshalOpts.Marshal(&pb.StartSignal{
		RoundNumber: s.Round,
		BotMask:     s.BotMask,
		StartedBy:   uint32(s.StartedBy),
	})
	return b
}

// UnmarshalStart decodes a start signal.
func UnmarshalStart(b []byte) (domain.StartSignal, error) {
	msg := &pb.StartSignal{}
	if err := proto.Unmarshal(b, msg); err != nil {
		return domain.StartSignal{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if msg.GetStartedBy() > math.MaxUint8 {
		return domain.StartSignal{}, fmt.Errorf("started_by %d: %w", msg.GetStartedBy(), domain.ErrInvalidSeat)
	}
	return domain.StartSignal{
		Round:     msg.GetRoundNumber(),
		BotMask:   msg.GetBotMask(),
		StartedBy: uint8(msg.GetStartedBy()),
	}, nil
}
