package player

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jsphweid/chordbloom/constants"
	"github.com/jsphweid/chordbloom/logger"
	"github.com/jsphweid/chordbloom/model"
	gomidi "gitlab.com/gomidi/midi/v2"
)

var ErrNoPort = errors.New("no midi out port")

type Sender func(gomidi.Message) error

// Step is one note on or note off, due At after playback starts.
type Step struct {
	At  time.Duration
	Key uint8
	On  bool
}

func (s Step) Message() gomidi.Message {
	if s.On {
		return gomidi.NoteOn(constants.MidiChannel, s.Key, constants.NoteOnVelocity)
	}
	return gomidi.NoteOffVelocity(constants.MidiChannel, s.Key, constants.NoteOffVelocity)
}

// BeatDuration is the length of one beat; 120 BPM gives half a second.
func BeatDuration(tempoBPM float64) time.Duration {
	if tempoBPM <= 0 {
		tempoBPM = constants.DefaultTempoBPM
	}
	return time.Duration(float64(time.Minute) / tempoBPM)
}

// Schedule lays events out in time. At equal times note offs come first.
func Schedule(events []model.NoteEvent, tempoBPM float64) []Step {
	beat := BeatDuration(tempoBPM)
	at := func(beats float64) time.Duration {
		return time.Duration(beats * float64(beat))
	}

	steps := make([]Step, 0, len(events)*2)
	for _, e := range events {
		key := uint8(e.Midi & 0x7f)
		steps = append(steps,
			Step{At: at(e.StartBeats), Key: key, On: true},
			Step{At: at(e.EndBeats()), Key: key},
		)
	}
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].At != steps[j].At {
			return steps[i].At < steps[j].At
		}
		return !steps[i].On && steps[j].On
	})
	return steps
}

type Player struct {
	Send Sender

	// sleep waits for d or until ctx is done; swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func New(send Sender) *Player {
	return &Player{Send: send, sleep: sleep}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Play sends events at tempo and returns when the last note has ended. When
// ctx is cancelled every sounding note is released before returning.
func (p *Player) Play(ctx context.Context, events []model.NoteEvent, tempoBPM float64) error {
	sounding := make(map[uint8]int)
	var elapsed time.Duration

	for _, step := range Schedule(events, tempoBPM) {
		if err := p.sleep(ctx, step.At-elapsed); err != nil {
			p.silence(sounding)
			return err
		}
		elapsed = step.At

		if err := p.Send(step.Message()); err != nil {
			p.silence(sounding)
			return fmt.Errorf("error sending midi: %w", err)
		}
		if step.On {
			sounding[step.Key]++
		} else if sounding[step.Key] > 1 {
			sounding[step.Key]--
		} else {
			delete(sounding, step.Key)
		}
	}
	return nil
}

// Loop plays events again and again until ctx is done.
func (p *Player) Loop(ctx context.Context, events []model.NoteEvent, tempoBPM float64) error {
	if len(events) == 0 {
		return nil
	}
	for pass := 1; ; pass++ {
		logger.Debug("Starting loop pass", logger.Fields{"pass": pass})
		if err := p.Play(ctx, events, tempoBPM); err != nil {
			return err
		}
	}
}

func (p *Player) silence(sounding map[uint8]int) {
	keys := make([]int, 0, len(sounding))
	for k := range sounding {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		if err := p.Send(Step{Key: uint8(k)}.Message()); err != nil {
			logger.Warn("Could not release note", logger.Fields{"key": k, "error": err.Error()})
		}
	}
}

// OpenPort finds the first out port whose name contains name (any port when
// name is empty) and returns a sender for it. A driver must be registered.
func OpenPort(name string) (Sender, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, port := range gomidi.GetOutPorts() {
		if want != "" && !strings.Contains(strings.ToLower(port.String()), want) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", port.String(), err)
		}
		logger.Info("Opened midi out port", logger.Fields{"port": port.String()})
		return send, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoPort, name)
}
