package i18n

// Message is a translatable message as handed over by the front end. The
// pipeline treats its content as opaque: only the id, meaning and the
// placeholders that name child views matter here.
type Message struct {
	ID            string
	MessageString string
	Meaning       string
	Description   string
	CustomID      string
	// Placeholders names the placeholders of the message in source order
	Placeholders []string
}

// NewMessage creates a new Message. The id is derived from the message text
// and meaning unless a custom id is given.
func NewMessage(messageString, meaning, description, customID string, placeholders []string) *Message {
	msg := &Message{
		MessageString: messageString,
		Meaning:       meaning,
		Description:   description,
		CustomID:      customID,
		Placeholders:  placeholders,
	}
	msg.ID = DecimalDigest(msg)
	return msg
}

// TagPlaceholder is the placeholder of an element or template inside a message
type TagPlaceholder struct {
	Tag       string
	StartName string
	CloseName string
}

// NewTagPlaceholder creates a new TagPlaceholder
func NewTagPlaceholder(tag, startName, closeName string) *TagPlaceholder {
	return &TagPlaceholder{Tag: tag, StartName: startName, CloseName: closeName}
}

// BlockPlaceholder is the placeholder of a control-flow block inside a message
type BlockPlaceholder struct {
	Name      string
	StartName string
	CloseName string
}

// NewBlockPlaceholder creates a new BlockPlaceholder
func NewBlockPlaceholder(name, startName, closeName string) *BlockPlaceholder {
	return &BlockPlaceholder{Name: name, StartName: startName, CloseName: closeName}
}

// Placeholder is either a *TagPlaceholder or a *BlockPlaceholder
type Placeholder interface {
	GetStartName() string
	GetCloseName() string
}

// GetStartName returns the name of the opening placeholder
func (t *TagPlaceholder) GetStartName() string { return t.StartName }

// GetCloseName returns the name of the closing placeholder
func (t *TagPlaceholder) GetCloseName() string { return t.CloseName }

// GetStartName returns the name of the opening placeholder
func (b *BlockPlaceholder) GetStartName() string { return b.StartName }

// GetCloseName returns the name of the closing placeholder
func (b *BlockPlaceholder) GetCloseName() string { return b.CloseName }
