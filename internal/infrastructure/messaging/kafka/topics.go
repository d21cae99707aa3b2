package kafka

// Topics published by MolForge.
const (
	TopicMoleculeConverted = "molecule.converted"
)

// Header keys set on every event.
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
	HeaderSource    = "source"
)

//Personal.AI order the ending
