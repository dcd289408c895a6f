package render

type layerEntry struct {
	canvas   *Canvas
	name     string
	priority RenderPriority
	index    int // registration order for stable sort
	hidden   bool
}

// Compositor owns one canvas per component and flattens them in priority order
// A component clearing its own canvas never erases another component's pixels
type Compositor struct {
	out        *RenderBuffer
	background RGB
	layers     []layerEntry
	regCount   int
	labels     []Label
}

// NewCompositor creates a compositor whose output is width x height pixels
func NewCompositor(width, height int, background RGB) *Compositor {
	return &Compositor{
		out:        NewRenderBuffer(width, height),
		background: background,
		layers:     make([]layerEntry, 0, 8),
	}
}

// Layer creates a canvas at the specified priority. Maintains sorted order via insertion sort
func (c *Compositor) Layer(name string, priority RenderPriority) *Canvas {
	w, h := c.out.Size()
	entry := layerEntry{
		canvas:   NewCanvas(w, h),
		name:     name,
		priority: priority,
		index:    c.regCount,
	}
	c.regCount++

	pos := len(c.layers)
	for i, e := range c.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	c.layers = append(c.layers, layerEntry{})
	copy(c.layers[pos+1:], c.layers[pos:])
	c.layers[pos] = entry
	return entry.canvas
}

// Names returns layer names in composite order
func (c *Compositor) Names() []string {
	names := make([]string, len(c.layers))
	for i, e := range c.layers {
		names[i] = e.name
	}
	return names
}

// SetVisible shows or hides the named layer, returns false if unknown
func (c *Compositor) SetVisible(name string, visible bool) bool {
	for i := range c.layers {
		if c.layers[i].name == name {
			c.layers[i].hidden = !visible
			return true
		}
	}
	return false
}

// Size returns output dimensions in pixels
func (c *Compositor) Size() (int, int) {
	return c.out.Size()
}

// Resize updates the output and every layer
func (c *Compositor) Resize(width, height int) {
	c.out.Resize(width, height)
	for _, e := range c.layers {
		e.canvas.Resize(width, height)
	}
}

// Compose flattens visible layers over the opaque background
// The returned buffer is reused by the next call
func (c *Compositor) Compose() *RenderBuffer {
	c.out.Fill(Pixel{C: c.background, A: 1})
	c.labels = c.labels[:0]

	for _, e := range c.layers {
		if e.hidden {
			continue
		}
		e.canvas.Buffer().CompositeOnto(c.out, BlendAlpha)
		c.labels = append(c.labels, e.canvas.Labels()...)
	}
	return c.out
}

// Labels returns text runs gathered by the last Compose, in layer order
func (c *Compositor) Labels() []Label {
	return c.labels
}
