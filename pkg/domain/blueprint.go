package domain

// PageSpec describes a page in the document workspace and the pages nested under it.
type PageSpec struct {
	Title    string     `json:"title" yaml:"title" mapstructure:"title"`
	Children []PageSpec `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// Count returns the number of pages in the subtree rooted at p, p included.
func (p PageSpec) Count() int {
	n := 1
	for _, c := range p.Children {
		n += c.Count()
	}
	return n
}

// ContainerSpec describes a named container in the task workspace.
type ContainerSpec struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
}

// SpaceSpec describes the top-level container and the features enabled on creation.
type SpaceSpec struct {
	Name              string `json:"name" yaml:"name" mapstructure:"name"`
	MultipleAssignees bool   `json:"multiple_assignees" yaml:"multiple_assignees" mapstructure:"multiple_assignees"`
	DueDates          bool   `json:"due_dates" yaml:"due_dates" mapstructure:"due_dates"`
}

// DocumentBlueprint is the page tree created under the root anchor.
type DocumentBlueprint struct {
	Root PageSpec `json:"root" yaml:"root" mapstructure:"root"`
}

// TaskBlueprint is the space and the lists created inside it.
type TaskBlueprint struct {
	Space SpaceSpec       `json:"space" yaml:"space" mapstructure:"space"`
	Lists []ContainerSpec `json:"lists" yaml:"lists" mapstructure:"lists"`
}

// Blueprint is the full structure provisioned by a run.
type Blueprint struct {
	Document DocumentBlueprint `json:"document" yaml:"document" mapstructure:"document"`
	Tasks    TaskBlueprint     `json:"tasks" yaml:"tasks" mapstructure:"tasks"`
}
