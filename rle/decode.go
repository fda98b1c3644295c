package rle

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golife/model"
	"github.com/sheikhrachel/golife/rules"
)

const (
	// maxRunLength bounds a single run count
	maxRunLength = 1 << 16
	// maxDimension bounds the size a header may declare
	maxDimension = 1 << 16
)

const (
	tagDead  = 'b'
	tagAlive = 'o'
	tagEOL   = '$'
	tagEnd   = '!'
)

// Decode parses an RLE document and centers it in a grid of minWidth x
// minHeight cells.
func Decode(text string, minWidth, minHeight int) (*model.Grid, error) {
	p, err := Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "[Decode]")
	}
	g, err := p.Grid(minWidth, minHeight)
	if err != nil {
		return nil, errors.Wrap(err, "[Decode]")
	}
	return g, nil
}

type header struct {
	width  int
	height int
	rule   string
}

// Parse reads an RLE document into a Pattern. With a header the pattern has
// the declared size, otherwise it spans the rows and columns its runs cover.
func Parse(text string) (*Pattern, error) {
	var (
		p    = &Pattern{Rule: rules.ConwayRule}
		hdr  *header
		body strings.Builder
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case line[0] == '#':
			p.addComment(line)
		case hdr == nil && body.Len() == 0 && line[0] == 'x':
			h, err := parseHeader(line)
			if err != nil {
				return nil, errors.Wrap(err, "[Parse]")
			}
			hdr = &h
			if h.rule != "" {
				p.Rule = h.rule
			}
		default:
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}

	if err := p.parseBody(body.String()); err != nil {
		return nil, errors.Wrap(err, "[Parse]")
	}

	if hdr != nil {
		if p.Width > hdr.width || p.Height > hdr.height {
			return nil, errors.Wrapf(ErrMalformedHeader, "[Parse] body spans %dx%d, header declares %dx%d",
				p.Width, p.Height, hdr.width, hdr.height)
		}
		p.Width, p.Height = hdr.width, hdr.height
	}
	return p, nil
}

func (p *Pattern) addComment(line string) {
	if len(line) < 2 {
		return
	}
	text := strings.TrimSpace(line[2:])
	switch line[1] {
	case 'N':
		p.Name = text
	case 'O':
		p.Author = text
	case 'C', 'c':
		p.Comments = append(p.Comments, text)
	}
}

func parseHeader(line string) (h header, err error) {
	var hasX, hasY bool
	for _, field := range strings.Split(line, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return h, errors.Wrapf(ErrMalformedHeader, "[parseHeader] field %q has no '='", strings.TrimSpace(field))
		}
		key, value = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value)
		switch key {
		case "x":
			h.width, err = parseDimension(key, value)
			hasX = true
		case "y":
			h.height, err = parseDimension(key, value)
			hasY = true
		case "rule":
			if value == "" {
				return h, errors.Wrap(ErrMalformedHeader, "[parseHeader] empty rule")
			}
			h.rule = value
		default:
			return h, errors.Wrapf(ErrMalformedHeader, "[parseHeader] unknown key %q", key)
		}
		if err != nil {
			return h, err
		}
	}
	if !hasX || !hasY {
		return h, errors.Wrapf(ErrMalformedHeader, "[parseHeader] %q must declare both x and y", line)
	}
	return h, nil
}

func parseDimension(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > maxDimension {
		return 0, errors.Wrapf(ErrMalformedHeader, "[parseHeader] %s = %q is not a size in [0, %d]", key, value, maxDimension)
	}
	return n, nil
}

// parseBody walks the run tokens and records living cells and the covered extent
func (p *Pattern) parseBody(body string) error {
	var (
		x, y     int
		count    int
		hasCount bool
	)

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			count = count*10 + int(c-'0')
			hasCount = true
			if count > maxRunLength {
				return errors.Wrapf(ErrUnknownToken, "[parseBody] run count at offset %d exceeds %d", i, maxRunLength)
			}
			continue
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		}

		n := 1
		if hasCount {
			n = count
		}
		count, hasCount = 0, false

		switch c {
		case tagDead, tagAlive:
			if c == tagAlive {
				for k := range n {
					p.Alive = append(p.Alive, model.Point{X: x + k, Y: y})
				}
			}
			x += n
			if n > 0 {
				p.Width = max(p.Width, x)
				p.Height = max(p.Height, y+1)
			}
		case tagEOL:
			y += n
			x = 0
		case tagEnd:
			return nil
		default:
			return errors.Wrapf(ErrUnknownToken, "[parseBody] %q at offset %d", c, i)
		}
	}
	return errors.Wrap(ErrUnterminatedPattern, "[parseBody] no '!' found")
}
