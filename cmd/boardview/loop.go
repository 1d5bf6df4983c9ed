package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-xr/internal/entity"
	"github.com/rocketscienceinc/tictactoe-xr/internal/interaction"
	"github.com/rocketscienceinc/tictactoe-xr/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

// viewer is the simulated head: a fixed eye turned by yaw and pitch.
type viewer struct {
	yaw, pitch float64
}

func (that *viewer) turn(dYaw, dPitch float64) {
	that.yaw += dYaw
	that.pitch = min(max(that.pitch+dPitch, -maxPitch), maxPitch)
}

func (that *viewer) pose() vmath.Transform {
	rotation := vmath.FromAxisAngle(vmath.UnitY, that.yaw).Mul(vmath.FromAxisAngle(vmath.UnitX, that.pitch))

	return vmath.Transform{Position: eye, Rotation: rotation}
}

type frameSession interface {
	Frame(pose vmath.Transform) []interaction.Effect
	Activate(hit *entity.HitResult) []interaction.Effect
	Recenter(pose vmath.Transform)
}

// handleKey applies one key press. It returns false when the user quits.
func handleKey(ev *tcell.EventKey, head *viewer, session frameSession, v *view, sound *chime) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		head.turn(turnStep, 0)
	case tcell.KeyRight:
		head.turn(-turnStep, 0)
	case tcell.KeyUp:
		head.turn(0, turnStep)
	case tcell.KeyDown:
		head.turn(0, -turnStep)
	case tcell.KeyEnter:
		trigger(session, v, sound)
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			trigger(session, v, sound)
		case 'c':
			session.Recenter(head.pose())
			v.status = "board recentered"
		case 'q':
			return false
		}
	}

	return true
}

func trigger(session frameSession, v *view, sound *chime) {
	if v.apply(session.Activate(nil)) {
		sound.play()
	}
}

func loop(screen tcell.Screen, session *usecase.Session, v *view, sound *chime) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	head := &viewer{}

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !handleKey(ev, head, session, v, sound) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			v.apply(session.Frame(head.pose()))
			v.draw(head.yaw, head.pitch)
		}
	}
}
