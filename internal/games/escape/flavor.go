package escape

import (
	"fmt"

	"github.com/vovakirdan/punch-escape/internal/core"
)

// Fail is a game-over headline.
type Fail struct {
	Title string
	Text  string
	Color core.Color
}

// Fails are the game-over headlines, one picked at random per game over.
var Fails = []Fail{
	{"BONKED!", "A rock to the skull. Stars everywhere.", core.ColorBrightRed},
	{"SLIPPED!", "Classic banana peel. No shame.", core.ColorYellow},
	{"TACKLED!", "Knuckles body-slammed him.", core.ColorOrange},
	{"TANGLED!", "Creepvine grabbed him mid-stride.", core.ColorGreen},
	{"CRUSHED!", "Crusher rolled right through Punch.", core.ColorGray},
	{"AMBUSHED!", "Twin Trap had this planned all along.", core.ColorPink},
	{"SPIKED!", "Stabby appeared from nowhere.", core.ColorRed},
	{"OVERWHELMED!", "The whole gang showed up. Party.", core.ColorMagenta},
}

// failText is the game-over body naming the villain when one is known.
func failText(f Fail, villain string) string {
	if villain == "" {
		return f.Text
	}
	return fmt.Sprintf("Taken out by %s. %s", villain, f.Text)
}

// ShareText is the brag line for a finished run.
func ShareText(won bool, level, score int) string {
	if won {
		return fmt.Sprintf("I BEAT PUNCH'S GREAT ESCAPE! All 10 levels! %s pts!", thousands(score))
	}
	return fmt.Sprintf("Punch's Great Escape - Level %d, %s pts!", level, thousands(score))
}

// thousands formats n with comma separators.
func thousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
