package domain

// MediaDescriptor is derived from a media payload. It lives for a single event.
type MediaDescriptor struct {
	Kind             MediaKind
	Mimetype         string
	DeclaredFileName string
	FileLength       uint64
	Width            uint32
	Height           uint32
	DurationSeconds  uint32
	PageCount        uint32
	IsAnimated       bool
	IsAvatar         bool
	PTT              bool
}

// StoredFile is a media attachment that has been fully written and closed.
type StoredFile struct {
	Path string
	Name string
	Size int64
	Kind MediaKind
}

var kindFolders = map[MediaKind]string{
	MediaKindImage:    "Images",
	MediaKindVideo:    "Videos",
	MediaKindSticker:  "Stickers",
	MediaKindDocument: "Documents",
	MediaKindAudio:    "Audio",
}

// Folder returns the directory name media of this kind is saved under.
func (x MediaKind) Folder() string {
	return kindFolders[x]
}

// DefaultMimetype is used when the wire message omits a mimetype.
func (x MediaKind) DefaultMimetype() string {
	return string(x) + "/unknown"
}

// Classify maps a payload to its media descriptor and reference. ok is
// false for text, unsupported and nil payloads.
func Classify(p Payload) (desc MediaDescriptor, ref MediaRef, ok bool) {
	switch v := p.(type) {
	case Image:
		desc = descriptor(MediaKindImage, v.Media)
		desc.Width, desc.Height = v.Width, v.Height
		return desc, v.Ref, true
	case Video:
		desc = descriptor(MediaKindVideo, v.Media)
		desc.Width, desc.Height = v.Width, v.Height
		desc.DurationSeconds = v.Seconds
		return desc, v.Ref, true
	case Sticker:
		desc = descriptor(MediaKindSticker, v.Media)
		desc.Width, desc.Height = v.Width, v.Height
		desc.IsAnimated, desc.IsAvatar = v.IsAnimated, v.IsAvatar
		return desc, v.Ref, true
	case Document:
		desc = descriptor(MediaKindDocument, v.Media)
		desc.DeclaredFileName = v.FileName
		desc.PageCount = v.PageCount
		return desc, v.Ref, true
	case Audio:
		desc = descriptor(MediaKindAudio, v.Media)
		desc.DurationSeconds = v.Seconds
		desc.PTT = v.PTT
		return desc, v.Ref, true
	default:
		return MediaDescriptor{}, nil, false
	}
}

func descriptor(kind MediaKind, m Media) MediaDescriptor {
	mimetype := m.Mimetype
	if mimetype == "" {
		mimetype = kind.DefaultMimetype()
	}
	return MediaDescriptor{
		Kind:       kind,
		Mimetype:   mimetype,
		FileLength: m.FileLength,
	}
}
