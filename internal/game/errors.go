package game

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomAlreadyStarted = errors.New("room already started")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyJoined      = errors.New("already in room")
)

// JoinErrorMessage turns a join failure into the text shown to the player.
func JoinErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "Unable to join this game: room not found."
	case errors.Is(err, ErrRoomAlreadyStarted):
		return "Unable to join this game: it has already started."
	case errors.Is(err, ErrRoomFull):
		return "Unable to join this game: the room is full."
	case errors.Is(err, ErrAlreadyJoined):
		return "You have already joined this game."
	default:
		return "Unable to join this game."
	}
}

func joinRejectReason(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "not_found"
	case errors.Is(err, ErrRoomAlreadyStarted):
		return "already_started"
	case errors.Is(err, ErrRoomFull):
		return "full"
	case errors.Is(err, ErrAlreadyJoined):
		return "duplicate"
	default:
		return "other"
	}
}
