package canvas

import (
	"fmt"
	"strings"
)

// Op names a Surface method.
type Op string

const (
	OpSetLineWidth Op = "set_line_width"
	OpLine         Op = "line"
	OpEllipse      Op = "ellipse"
	OpRect         Op = "rect"
	OpPolygon      Op = "polygon"
	OpText         Op = "text"
	OpClear        Op = "clear"
)

// Command is one recorded Surface call. Args holds the numeric arguments in
// call order; Points, Text, Font, Color and Anchor hold the rest.
type Command struct {
	Op       Op        `json:"op"`
	Args     []float64 `json:"args,omitempty"`
	Points   []Point   `json:"points,omitempty"`
	Text     string    `json:"text,omitempty"`
	Font     *Font     `json:"font,omitempty"`
	Color    Color     `json:"color,omitempty"`
	Rotation float64   `json:"rotation,omitempty"`
	Anchor   Anchor    `json:"anchor,omitempty"`
}

// String renders the command compactly, e.g. "line(30,400,2910,400) green".
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(string(c.Op))
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%g", a)
	}
	for i, p := range c.Points {
		if i > 0 || len(c.Args) > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "(%g,%g)", p.X, p.Y)
	}
	b.WriteByte(')')
	if c.Text != "" {
		fmt.Fprintf(&b, " %q", c.Text)
	}
	if c.Font != nil {
		fmt.Fprintf(&b, " [%s]", c.Font)
	}
	if c.Rotation != 0 {
		fmt.Fprintf(&b, " rot=%g", c.Rotation)
	}
	if c.Anchor != "" {
		fmt.Fprintf(&b, " anchor=%s", c.Anchor)
	}
	if c.Color != "" {
		fmt.Fprintf(&b, " %s", c.Color)
	}
	return b.String()
}

// Recorder is a Surface that records every call instead of drawing.
type Recorder struct {
	W, H     float64
	Commands []Command
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{W: width, H: height}
}

func (r *Recorder) Width() float64  { return r.W }
func (r *Recorder) Height() float64 { return r.H }

func (r *Recorder) SetLineWidth(w float64) {
	r.add(Command{Op: OpSetLineWidth, Args: []float64{w}})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 float64, c Color) {
	r.add(Command{Op: OpLine, Args: []float64{x0, y0, x1, y1}, Color: c})
}

func (r *Recorder) DrawEllipse(x, y, rx, ry float64, c Color) {
	r.add(Command{Op: OpEllipse, Args: []float64{x, y, rx, ry}, Color: c})
}

func (r *Recorder) DrawRect(x0, y0, x1, y1 float64, c Color) {
	r.add(Command{Op: OpRect, Args: []float64{x0, y0, x1, y1}, Color: c})
}

func (r *Recorder) DrawPolygon(c Color, points ...Point) {
	r.add(Command{Op: OpPolygon, Points: append([]Point(nil), points...), Color: c})
}

func (r *Recorder) DrawText(x, y float64, text string, f Font, c Color, rotation float64, anchor Anchor) {
	r.add(Command{
		Op: OpText, Args: []float64{x, y}, Text: text, Font: &f,
		Color: c, Rotation: rotation, Anchor: anchor,
	})
}

// Clear drops everything recorded so far and records the clear itself.
func (r *Recorder) Clear() {
	r.Commands = r.Commands[:0]
	r.add(Command{Op: OpClear})
}

func (r *Recorder) add(c Command) { r.Commands = append(r.Commands, c) }

// Count returns how many recorded commands have the given op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Lines renders every recorded command with Command.String.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		out[i] = c.String()
	}
	return out
}

var _ Surface = (*Recorder)(nil)
