package reveal

import "sync"

// Element is a host node the controller can style.
type Element interface {
	ID() string
	// Connected reports whether the host node still exists. Disconnected
	// elements are skipped when their trigger or frame fires.
	Connected() bool
	Apply(Style)
}

// Node is an in-memory Element. Server-side rendering reads the style it
// ends up with; tests use it to observe what the controller applied.
type Node struct {
	mu        sync.Mutex
	id        string
	connected bool
	style     Style
	history   []Style
}

// NewNode returns a connected node with a zero style.
func NewNode(id string) *Node {
	return &Node{id: id, connected: true}
}

func (n *Node) ID() string {
	return n.id
}

func (n *Node) Connected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.connected
}

// Remove disconnects the node, as if its host element unmounted.
func (n *Node) Remove() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.connected = false
}

func (n *Node) Apply(style Style) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style = style
	n.history = append(n.history, style)
}

// Style returns the last applied style.
func (n *Node) Style() Style {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style
}

// History returns every style applied so far, oldest first.
func (n *Node) History() []Style {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Style(nil), n.history...)
}
