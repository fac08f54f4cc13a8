package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Building blocks for the engine patterns. Word characters and spaces are
// Unicode-aware so trims such as "FÉLINE" and NBSP separators still match.
const (
	reSpace = `[\s\p{Zs}]`
	reWord  = `[\p{L}\p{N}_]`
	reCode  = `[\p{L}\p{N}_-]`
	reDispl = `(?P<displacement>\d+\.\d+)`
)

var (
	// "1.6"
	displacementRegexp = regexp.MustCompile(reDispl)

	// "1.6 BLUEHDI 100 SHINE", "1.1 60 MIAMI"
	fullRegexp = regexp.MustCompile(reDispl + reSpace + `+(?:(?P<code>` + reCode + `+)` + reSpace + `+)?(?P<hp>\d+)` + reSpace + `+(?P<trim>` + reWord + `+.*)`)

	// "1.1 60"
	displacementHPRegexp = regexp.MustCompile(reDispl + reSpace + `+(?P<hp>\d+)`)

	// "2.0 HDI 90"
	displacementCodeHPRegexp = regexp.MustCompile(reDispl + reSpace + `+(?P<code>` + reCode + `+)` + reSpace + `+?(?P<hp>\d+)`)

	// "300ch 80kWh E-TECH"
	electricRegexp = regexp.MustCompile(`(?P<hp>\d+ch)` + reSpace + `+(?P<battery>\d+kWh)` + reSpace + `+(?P<trim>` + reWord + `+.*)`)

	// "320ch 75kWh"
	electricShortRegexp = regexp.MustCompile(`(?P<hp>\d+ch)` + reSpace + `+(?P<battery>\d+kWh+)`)
)

// Engine is the structured form of a listing's engine text.
// Any field may be nil when the text does not carry it.
type Engine struct {
	Displacement *string
	EngineCode   *string
	Horsepower   *int64
	Trim         *string
	Battery      *string
}

// EngineCaptures holds the raw captures of every pattern family, before
// they are merged. A nil field means the family did not match (or, for an
// optional group, matched without it).
type EngineCaptures struct {
	Displacement *string

	FullCode       *string
	FullHorsepower *string
	FullTrim       *string

	DisplacementHorsepower *string

	CodeHPCode       *string
	CodeHPHorsepower *string

	ElectricHorsepower *string
	ElectricBattery    *string
	ElectricTrim       *string

	ElectricShortHorsepower *string
	ElectricShortBattery    *string
}

// ParseEngine decomposes free engine text such as "1.6 BLUEHDI 100 SHINE"
// or "320ch 75kWh" into its parts.
func ParseEngine(text string) Engine {
	return ExtractEngine(text).Merge()
}

// ExtractEngine runs every pattern family against text independently.
func ExtractEngine(text string) EngineCaptures {
	var c EngineCaptures

	c.Displacement = submatch(displacementRegexp, text)["displacement"]

	full := submatch(fullRegexp, text)
	c.FullCode, c.FullHorsepower, c.FullTrim = full["code"], full["hp"], full["trim"]

	c.DisplacementHorsepower = submatch(displacementHPRegexp, text)["hp"]

	codeHP := submatch(displacementCodeHPRegexp, text)
	c.CodeHPCode, c.CodeHPHorsepower = codeHP["code"], codeHP["hp"]

	elec := submatch(electricRegexp, text)
	c.ElectricHorsepower, c.ElectricBattery, c.ElectricTrim = elec["hp"], elec["battery"], elec["trim"]

	short := submatch(electricShortRegexp, text)
	c.ElectricShortHorsepower, c.ElectricShortBattery = short["hp"], short["battery"]

	return c
}

// Merge resolves each field from the most specific family that produced it.
func (c EngineCaptures) Merge() Engine {
	hp := firstNonNil(
		c.FullHorsepower,
		c.DisplacementHorsepower,
		c.CodeHPHorsepower,
		c.ElectricHorsepower,
		c.ElectricShortHorsepower,
	)
	return Engine{
		Displacement: c.Displacement,
		EngineCode:   firstNonNil(c.FullCode, c.CodeHPCode),
		Horsepower:   parseHorsepower(hp),
		Trim:         firstNonNil(c.FullTrim, c.ElectricTrim),
		Battery:      firstNonNil(c.ElectricBattery, c.ElectricShortBattery),
	}
}

// parseHorsepower accepts "100" as well as the electric notation "320ch".
func parseHorsepower(s *string) *int64 {
	if s == nil {
		return nil
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(*s, "ch", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// submatch returns the named groups of the leftmost match of re in s.
// Groups that did not take part in the match are absent from the map.
func submatch(re *regexp.Regexp, s string) map[string]*string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil
	}
	out := make(map[string]*string, len(re.SubexpNames()))
	for i, name := range re.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		v := s[loc[2*i]:loc[2*i+1]]
		out[name] = &v
	}
	return out
}

func firstNonNil(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func (e Engine) String() string {
	hp := "null"
	if e.Horsepower != nil {
		hp = strconv.FormatInt(*e.Horsepower, 10)
	}
	return fmt.Sprintf("{displacement=%s code=%s hp=%s trim=%s battery=%s}",
		orNull(e.Displacement), orNull(e.EngineCode), hp, orNull(e.Trim), orNull(e.Battery))
}

func orNull(s *string) string {
	if s == nil {
		return "null"
	}
	return strconv.Quote(*s)
}
