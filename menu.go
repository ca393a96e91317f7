package envbar

// DefaultMenuID is the toolbar identifier used unless WithMenuID overrides it.
const DefaultMenuID = "env-switcher"

// Node is a single toolbar entry in the shape host toolbars consume:
// an identifier, an optional parent identifier, a display title, an
// optional link and an optional CSS class.
type Node struct {
	ID     string
	Parent string
	Title  string
	Href   string
	Class  string
}

// Toolbar is implemented by hosts that draw their own admin bar and accept
// appended entries.
type Toolbar interface {
	Append(Node)
}

// Menu is the composed toolbar fragment: one parent entry for the active
// environment plus one child per remaining environment.
type Menu struct {
	Parent   Node
	Children []Node
}

// Nodes returns the parent followed by the children, in render order.
func (m *Menu) Nodes() []Node {
	nodes := make([]Node, 0, len(m.Children)+1)
	nodes = append(nodes, m.Parent)
	return append(nodes, m.Children...)
}

// Compose builds the toolbar menu for a resolution.
//
// It returns nil when no environment has a URL configured at all. The parent
// entry is always present otherwise, even when nothing matched (empty title)
// or when the toolbar is hidden, so indicator styling keeps working. Children
// are rendered only when visible is true, one per remaining environment in
// declaration order, each linking to that environment's URL with the current
// request path appended verbatim.
func Compose(res Resolution, path string, visible bool, menuID string) *Menu {
	if res.Active == "" && len(res.Others) == 0 {
		return nil
	}
	if menuID == "" {
		menuID = DefaultMenuID
	}

	menu := &Menu{
		Parent: Node{
			ID:    menuID,
			Title: res.Title,
			Class: menuID + "-" + string(res.Active),
		},
	}
	if !visible {
		return menu
	}

	menu.Children = make([]Node, 0, len(res.Others))
	for _, e := range res.Others {
		menu.Children = append(menu.Children, Node{
			ID:     menuID + "-" + string(e.Env),
			Parent: menuID,
			Title:  e.Env.Title(),
			Href:   e.URL + path,
			Class:  menuID + "-" + string(e.Env),
		})
	}
	return menu
}
