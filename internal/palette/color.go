package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/twconfig/internal/cssvalue"
)

// Kind classifies a color literal
type Kind int

// Color literal kinds
const (
	KindKeyword  Kind = iota // transparent, currentColor, inherit
	KindHex                  // #rgb, #rgba, #rrggbb, #rrggbbaa
	KindFunction             // rgb(), hsl(), var(), ...
	KindNamed                // CSS named color
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindHex:
		return "hex"
	case KindFunction:
		return "function"
	case KindNamed:
		return "named"
	}
	return "unknown"
}

// Color is a checked color literal
type Color struct {
	Raw  string
	Kind Kind
	// Hex is the opaque #rrggbb form when it can be computed, else ""
	Hex string
}

var keywords = map[string]bool{
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
}

var colorFunctions = map[string]bool{
	"rgb": true, "rgba": true, "hsl": true, "hsla": true, "hwb": true,
	"lab": true, "lch": true, "oklab": true, "oklch": true, "color": true,
	"var": true, "color-mix": true,
}

// ParseColor checks a palette value and classifies it
func ParseColor(value string) (Color, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	lower := strings.ToLower(raw)

	if keywords[lower] {
		return Color{Raw: raw, Kind: KindKeyword}, nil
	}

	if strings.HasPrefix(raw, "#") {
		hex, err := parseHex(lower)
		if err != nil {
			return Color{}, err
		}
		return Color{Raw: raw, Kind: KindHex, Hex: hex}, nil
	}

	if name, args, ok := cssvalue.Function(raw); ok {
		if !colorFunctions[name] {
			return Color{}, fmt.Errorf("%s() is not a color function", name)
		}
		return Color{Raw: raw, Kind: KindFunction, Hex: functionHex(name, args)}, nil
	}

	if namedColors[lower] {
		return Color{Raw: raw, Kind: KindNamed}, nil
	}

	return Color{}, fmt.Errorf("not a recognized color")
}

// parseHex validates #rgb, #rgba, #rrggbb and #rrggbbaa and returns #rrggbb
func parseHex(s string) (string, error) {
	digits := strings.TrimPrefix(s, "#")
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", fmt.Errorf("invalid hex digit %q", r)
		}
	}

	var rgb string
	switch len(digits) {
	case 3, 6:
		rgb = "#" + digits
	case 4:
		rgb = "#" + digits[:3]
	case 8:
		rgb = "#" + digits[:6]
	default:
		return "", fmt.Errorf("hex color must have 3, 4, 6 or 8 digits, got %d", len(digits))
	}

	c, err := colorful.Hex(rgb)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// functionHex computes #rrggbb for plain rgb() and hsl() values, or returns ""
func functionHex(name string, args []cssvalue.Token) string {
	var nums []float64
	var units []css.TokenType
	for _, tok := range args {
		switch tok.Type {
		case css.CommaToken:
			continue
		case css.NumberToken:
			v, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				return ""
			}
			nums = append(nums, v)
			units = append(units, tok.Type)
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(tok.Text, "%"), 64)
			if err != nil {
				return ""
			}
			nums = append(nums, v)
			units = append(units, tok.Type)
		case css.DelimToken:
			if tok.Text == "/" {
				// Alpha follows; the opaque color is computed from the first three
				continue
			}
			return ""
		default:
			return ""
		}
	}
	if len(nums) < 3 {
		return ""
	}

	switch name {
	case "rgb", "rgba":
		channel := func(i int) (float64, bool) {
			v := nums[i]
			if units[i] == css.PercentageToken {
				v = v / 100 * 255
			}
			return v / 255, v >= 0 && v <= 255
		}
		r, okR := channel(0)
		g, okG := channel(1)
		b, okB := channel(2)
		if !okR || !okG || !okB {
			return ""
		}
		return colorful.Color{R: r, G: g, B: b}.Clamped().Hex()
	case "hsl", "hsla":
		if units[1] != css.PercentageToken || units[2] != css.PercentageToken {
			return ""
		}
		c := colorful.Hsl(nums[0], nums[1]/100, nums[2]/100)
		if !c.IsValid() {
			return ""
		}
		return c.Hex()
	}
	return ""
}

// namedColors is the CSS Color Module Level 4 keyword set, lowercase
var namedColors = func() map[string]bool {
	const names = `aliceblue antiquewhite aqua aquamarine azure beige bisque black blanchedalmond blue
blueviolet brown burlywood cadetblue chartreuse chocolate coral cornflowerblue cornsilk crimson cyan
darkblue darkcyan darkgoldenrod darkgray darkgreen darkgrey darkkhaki darkmagenta darkolivegreen
darkorange darkorchid darkred darksalmon darkseagreen darkslateblue darkslategray darkslategrey
darkturquoise darkviolet deeppink deepskyblue dimgray dimgrey dodgerblue firebrick floralwhite
forestgreen fuchsia gainsboro ghostwhite gold goldenrod gray green greenyellow grey honeydew hotpink
indianred indigo ivory khaki lavender lavenderblush lawngreen lemonchiffon lightblue lightcoral
lightcyan lightgoldenrodyellow lightgray lightgreen lightgrey lightpink lightsalmon lightseagreen
lightskyblue lightslategray lightslategrey lightsteelblue lightyellow lime limegreen linen magenta
maroon mediumaquamarine mediumblue mediumorchid mediumpurple mediumseagreen mediumslateblue
mediumspringgreen mediumturquoise mediumvioletred midnightblue mintcream mistyrose moccasin
navajowhite navy oldlace olive olivedrab orange orangered orchid palegoldenrod palegreen
paleturquoise palevioletred papayawhip peachpuff peru pink plum powderblue purple rebeccapurple red
rosybrown royalblue saddlebrown salmon sandybrown seagreen seashell sienna silver skyblue slateblue
slategray slategrey snow springgreen steelblue tan teal thistle tomato turquoise violet wheat white
whitesmoke yellow yellowgreen`
	set := make(map[string]bool)
	for _, n := range strings.Fields(names) {
		set[n] = true
	}
	return set
}()
