package viewer

import (
	"fmt"
	"strconv"
)

const (
	openSymbol  = "[+]"
	closeSymbol = "[-]"
)

// renderInfo carries the styles of one rendering pass.
type renderInfo struct {
	focused     StyleModifier
	itemChanged StyleModifier
	indentation int
}

// draw renders n. p is the remainder of the active path if the active
// interaction point lies inside n, nil otherwise.
func draw(c *cursor, n node, p Path, info *renderInfo) {
	if len(p) == 0 {
		p = nil
	}
	switch n := n.(type) {
	case *scalarNode:
		if p != nil && p[0].Kind != StepScalar {
			panic(fmt.Sprintf("viewer: path %s does not match scalar", p))
		}
		drawScalar(c, n, p != nil, info)
	case *objectNode:
		drawObject(c, n, p, info)
	case *arrayNode:
		drawArray(c, n, p, info)
	}
}

func drawScalar(c *cursor, n *scalarNode, active bool, info *renderInfo) {
	var mods []StyleModifier
	if active {
		c.markActive()
		mods = append(mods, info.focused)
	}
	if n.changed {
		mods = append(mods, info.itemChanged)
	}
	c.styled(func() { c.write(n.value) }, mods...)
}

func drawDescription(c *cursor, description string, has, changed bool, info *renderInfo) {
	if !has {
		return
	}
	var mods []StyleModifier
	if changed {
		mods = append(mods, info.itemChanged)
	}
	c.styled(func() { c.write(description + " ") }, mods...)
}

// drawKnob writes symbol, focused if p addresses the knob kind.
func drawKnob(c *cursor, symbol string, kind StepKind, p Path, info *renderInfo) {
	if p != nil && p[0].Kind == kind {
		c.markActive()
		c.styled(func() { c.write(symbol) }, info.focused)
		return
	}
	c.write(symbol)
}

func drawObject(c *cursor, n *objectNode, p Path, info *renderInfo) {
	if p != nil && p[0].Kind != StepToggle && p[0].Kind != StepMember {
		panic(fmt.Sprintf("viewer: path %s does not match object", p))
	}
	drawDescription(c, n.description, n.hasDescription, n.descriptionChanged, info)
	if !n.extended {
		c.write("{ ")
		drawKnob(c, openSymbol, StepToggle, p, info)
		c.write(" }")
		return
	}

	c.write("{ ")
	drawKnob(c, closeSymbol, StepToggle, p, info)
	c.indented(info.indentation, func() {
		for _, key := range n.keys {
			c.wrapLine()
			c.write(key + ": ")
			var sub Path
			if p != nil && p[0].Kind == StepMember && p[0].Key == key {
				sub = p[1:]
			}
			draw(c, n.members[key], sub, info)
			c.write(",")
		}
	})
	c.write("\n}")
}

func drawArray(c *cursor, n *arrayNode, p Path, info *renderInfo) {
	if p != nil && (p[0].Kind == StepScalar || p[0].Kind == StepMember) {
		panic(fmt.Sprintf("viewer: path %s does not match array", p))
	}
	drawDescription(c, n.description, n.hasDescription, n.descriptionChanged, info)
	if !n.extended {
		c.write("[ ")
		drawKnob(c, openSymbol, StepToggle, p, info)
		c.write(" ]")
		return
	}

	c.write("[ ")
	drawKnob(c, closeSymbol, StepToggle, p, info)
	c.indented(info.indentation, func() {
		for i := 0; i < n.numExtended; i++ {
			c.wrapLine()
			var sub Path
			if p != nil && p[0].Kind == StepElement && p[0].Index == i {
				sub = p[1:]
			}
			draw(c, n.values[i], sub, info)
			c.write(",")
		}
	})
	c.write("\n] ")

	var footer []StyleModifier
	if n.lengthChanged {
		footer = append(footer, info.itemChanged)
	}
	c.styled(func() {
		c.write("<")
		if n.canShrink() {
			drawKnob(c, "-", StepShrink, p, info)
		} else {
			c.write(" ")
		}
		c.write(strconv.Itoa(n.numExtended) + "/" + strconv.Itoa(len(n.values)))
		if n.canGrow() {
			drawKnob(c, "+", StepGrow, p, info)
		} else {
			c.write(" ")
		}
		c.write(">")
	}, footer...)
}
