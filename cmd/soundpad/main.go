// Command soundpad is an interactive test board for the sound manager:
// number keys trigger the loaded profile's effects, letters control music,
// mute and volume.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/arlobryn/soundbank/audio"
	"github.com/arlobryn/soundbank/profile"
	"github.com/arlobryn/soundbank/tone"
)

const preloadTimeout = 30 * time.Second

type pad struct {
	screen  tcell.Screen
	manager *audio.Manager
	names   []string
	key     string
	status  string
}

func main() {
	key := profile.Default
	if len(os.Args) > 1 {
		key = os.Args[1]
	}

	manager := audio.New(audio.LoadConfig())
	if err := manager.Init(); err != nil {
		log.Fatalf("audio init: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
	decoded := manager.PreloadProfile(ctx, key)
	cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	names := make([]string, 0)
	for _, a := range profile.Sounds(key) {
		if a.Name != profile.Music {
			names = append(names, a.Name)
		}
	}

	p := &pad{
		screen:  screen,
		manager: manager,
		names:   names,
		key:     key,
		status:  fmt.Sprintf("loaded profile %q, %d assets decoded", key, decoded),
	}
	p.run()
	manager.Close()
}

func (p *pad) run() {
	for {
		p.draw()
		ev := p.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return
			}
			if !p.handleKey(ev.Rune()) {
				return
			}
		}
	}
}

// handleKey dispatches one keypress; returns false to quit.
func (p *pad) handleKey(r rune) bool {
	m := p.manager
	switch {
	case r == 'q':
		return false
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i < len(p.names) {
			name := p.names[i]
			if m.Play(name) == nil {
				p.status = fmt.Sprintf("no playback for %q", name)
			} else {
				p.status = fmt.Sprintf("playing %q", name)
			}
		}
	case r == 'b':
		if m.PlayMusic(profile.Music) == nil {
			p.status = "no playback for music"
		} else {
			p.status = "music started"
		}
	case r == 's':
		m.StopMusic()
		p.status = "music stopped"
	case r == 'm':
		if m.ToggleMute() {
			p.status = "muted"
		} else {
			p.status = "unmuted"
		}
	case r == '+' || r == '=':
		m.SetVolume(m.Volume() + 0.1)
		p.status = fmt.Sprintf("volume %.1f", m.Volume())
	case r == '-':
		m.SetVolume(m.Volume() - 0.1)
		p.status = fmt.Sprintf("volume %.1f", m.Volume())
	case r == 'k':
		m.PlaySimple(tone.SimpleClick)
		p.status = "click stinger"
	case r == 'e':
		m.PlaySimple(tone.SimpleError)
		p.status = "error stinger"
	}
	return true
}

func (p *pad) draw() {
	s := p.screen
	s.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	drawText(s, 0, 0, title, fmt.Sprintf("soundpad — profile %q", p.key))
	for i, name := range p.names {
		if i >= 9 {
			break
		}
		drawText(s, 2, 2+i, tcell.StyleDefault, fmt.Sprintf("%d  %s", i+1, name))
	}

	row := 3 + len(p.names)
	drawText(s, 0, row, dim, "b music   s stop   m mute   +/- volume   k/e stingers   q quit")
	drawText(s, 0, row+2, tcell.StyleDefault.Foreground(tcell.ColorGreen), p.status)
	drawText(s, 0, row+3, dim, fmt.Sprintf("volume %.1f  muted %v", p.manager.Volume(), p.manager.IsMuted()))

	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
