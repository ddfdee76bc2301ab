package game

import (
	"github.com/gwillem/wordcrane/pkg/arm"
	"github.com/gwillem/wordcrane/pkg/board"
)

// step runs the pickup/placement machine for one tick. Transitions only
// fire once the claw has reached its target.
func (s *Session) step() {
	if !s.arm.AtTarget() {
		return
	}

	switch s.arm.State {
	case arm.MovingToPickup:
		s.arrivePickup()
	case arm.MovingToSlot:
		s.arriveSlot()
	}
}

func (s *Session) startPickup(l *board.Letter) {
	s.pickup = l
	s.arm.State = arm.MovingToPickup
	s.arm.Target = l.Pos
	s.autoPlace = !s.manualPlace

	s.log.Debug().Str("letter", l.Char).Msg("moving to pickup")
}

func (s *Session) arrivePickup() {
	l := s.pickup
	if l == nil {
		s.arm.State = arm.Idle
		return
	}

	s.arm.Pick(l)
	l.Held = true
	s.pickup = nil

	if s.autoPlace {
		s.autoPlace = false
		s.moveToCurrentSlot()
		return
	}
	s.arm.State = arm.Holding
	s.log.Debug().Str("letter", l.Char).Msg("holding")
}

func (s *Session) moveToCurrentSlot() {
	slot := s.board.CurrentSlot()
	if slot == nil {
		// Nothing left to fill; put the tile back.
		if l := s.arm.Held; l != nil {
			l.Held = false
			s.board.ReturnToRest(l)
		}
		s.arm.Release()
		s.arm.MoveToRest()
		return
	}

	s.target = slot
	s.arm.State = arm.MovingToSlot
	s.arm.Target = slot.Center
	s.log.Debug().Int("slot", slot.Index).Msg("moving to slot")
}

// arriveSlot places the held tile and judges it.
func (s *Session) arriveSlot() {
	l, slot := s.arm.Held, s.target
	if l == nil || slot == nil {
		s.arm.Release()
		s.arm.MoveToRest()
		s.target = nil
		return
	}

	l.Held = false
	s.board.Bind(l, slot)

	if l.Char == slot.Expected {
		s.board.AdvancePointer()
		if s.board.FilledCount() == len(s.board.Slots) {
			s.complete = true
			s.log.Info().Str("word", s.level.Word).Str("board", s.board.Word()).Msg("level complete")
			s.emit(Event{Kind: LevelComplete, Word: s.level.Word})
		} else {
			s.log.Debug().Str("letter", l.Char).Int("pointer", s.board.Pointer).Msg("correct letter")
			s.emit(Event{Kind: CorrectLetter, Char: l.Char})
		}
	} else {
		s.board.Unbind(l)
		s.board.ReturnToRest(l)
		s.log.Debug().Str("letter", l.Char).Str("expected", slot.Expected).Str("board", s.board.Word()).Msg("wrong letter")
		s.emit(Event{Kind: WrongLetter, Char: l.Char})
	}

	s.arm.Release()
	s.arm.MoveToRest()
	s.target = nil
}
