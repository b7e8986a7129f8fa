package collections

import "strings"

// Routes holds the ordered endpoint candidates for each collection and
// folder operation. Deployments have shipped the same backend under
// different route names, so every operation carries a candidate list tried
// in declared order. Templates may reference {userID} and {id}.
type Routes struct {
	ListItems    []string `yaml:"list_items"`
	CreateItem   []string `yaml:"create_item"`
	UpdateItem   []string `yaml:"update_item"`
	DeleteItem   []string `yaml:"delete_item"`
	ListFolders  []string `yaml:"list_folders"`
	CreateFolder []string `yaml:"create_folder"`
	UpdateFolder []string `yaml:"update_folder"`
	DeleteFolder []string `yaml:"delete_folder"`
}

// DefaultRoutes covers the route names backends are known to expose, newest
// first.
func DefaultRoutes() Routes {
	return Routes{
		ListItems: []string{
			"/gameincollections/user/{userID}",
			"/collection/user/{userID}",
			"/gameincollections",
			"/collection",
		},
		CreateItem:   []string{"/gameincollections", "/collection"},
		UpdateItem:   []string{"/gameincollections/{id}", "/collection/{id}"},
		DeleteItem:   []string{"/gameincollections/{id}", "/collection/{id}"},
		ListFolders:  []string{"/folders/user/{userID}", "/folders"},
		CreateFolder: []string{"/folders"},
		UpdateFolder: []string{"/folders/{id}"},
		DeleteFolder: []string{"/folders/{id}"},
	}
}

// merge overlays any non-empty candidate lists from other onto r.
func (r Routes) merge(other Routes) Routes {
	if len(other.ListItems) > 0 {
		r.ListItems = other.ListItems
	}
	if len(other.CreateItem) > 0 {
		r.CreateItem = other.CreateItem
	}
	if len(other.UpdateItem) > 0 {
		r.UpdateItem = other.UpdateItem
	}
	if len(other.DeleteItem) > 0 {
		r.DeleteItem = other.DeleteItem
	}
	if len(other.ListFolders) > 0 {
		r.ListFolders = other.ListFolders
	}
	if len(other.CreateFolder) > 0 {
		r.CreateFolder = other.CreateFolder
	}
	if len(other.UpdateFolder) > 0 {
		r.UpdateFolder = other.UpdateFolder
	}
	if len(other.DeleteFolder) > 0 {
		r.DeleteFolder = other.DeleteFolder
	}
	return r
}

// expand resolves templates into absolute candidate URLs, preserving order.
func expand(base string, templates []string, vars map[string]string) []string {
	urls := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		u := tmpl
		for name, value := range vars {
			u = strings.ReplaceAll(u, "{"+name+"}", value)
		}
		urls = append(urls, base+u)
	}
	return urls
}
