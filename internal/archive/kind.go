package archive

// Kind is a family of archives that share an index file name. Each kind is
// recognized by a marker entry that only archives of that kind contain.
type Kind struct {
	// Name is the short identifier ("map" or "campaign")
	Name string

	// Marker is the entry whose presence identifies the kind
	Marker string

	// IndexFile is the name of the import list inside the archive
	IndexFile string
}

// Kinds lists the known archive kinds in probing order.
var Kinds = []Kind{
	{Name: "map", Marker: "war3map.j", IndexFile: "war3map.imp"},
	{Name: "campaign", Marker: "war3campaign.w3f", IndexFile: "war3campaign.imp"},
}

// DetectKind probes the archive for each kind's marker and returns the first
// match. The boolean is false when no marker is present.
func DetectKind(a Archive) (Kind, bool) {
	for _, k := range Kinds {
		// An unreadable marker does not identify the archive either
		if _, err := a.ReadEntry(k.Marker); err == nil {
			return k, true
		}
	}
	return Kind{}, false
}

// KindByName looks up a kind by its short identifier.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
