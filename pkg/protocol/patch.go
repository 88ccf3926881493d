package protocol

// PatchOp is the type of a DOM patch operation.
type PatchOp uint8

// Patch operation constants.
const (
	PatchAddClass    PatchOp = 0x01 // Add CSS class
	PatchRemoveClass PatchOp = 0x02 // Remove CSS class
	PatchSetAttr     PatchOp = 0x03 // Set attribute
	PatchRemoveAttr  PatchOp = 0x04 // Remove attribute

	// PatchAllowSubmit releases a form submission the client is holding.
	// The client resubmits the form natively on receipt.
	PatchAllowSubmit PatchOp = 0x10
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAllowSubmit:
		return "AllowSubmit"
	default:
		return "Unknown"
	}
}

// Patch is a single DOM operation targeting one element.
type Patch struct {
	Op     PatchOp
	Target string // Element id
	Key    string // Class name for class ops, attribute name for attr ops
	Value  string // Attribute value for SetAttr
}

// PatchesFrame is a batch of patches with a sequence number. Every
// patch produced while handling one event is flushed as one frame, so
// the client applies them in a single turn.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
	return e.Bytes()
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteString(p.Target)

	switch p.Op {
	case PatchAddClass, PatchRemoveClass, PatchRemoveAttr:
		e.WriteString(p.Key)

	case PatchSetAttr:
		e.WriteString(p.Key)
		e.WriteString(p.Value)

	case PatchAllowSubmit:
		// Target is sufficient
	}
}

// DecodePatches decodes a patches frame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	d := NewDecoder(data)

	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadBatchCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := 0; i < count; i++ {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}

	return &PatchesFrame{Seq: seq, Patches: patches}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	p.Target, err = d.ReadString()
	if err != nil {
		return err
	}

	switch p.Op {
	case PatchAddClass, PatchRemoveClass, PatchRemoveAttr:
		p.Key, err = d.ReadString()

	case PatchSetAttr:
		p.Key, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchAllowSubmit:
		// No additional data
	}

	return err
}

// NewAddClassPatch creates an AddClass patch.
func NewAddClassPatch(target, class string) Patch {
	return Patch{Op: PatchAddClass, Target: target, Key: class}
}

// NewRemoveClassPatch creates a RemoveClass patch.
func NewRemoveClassPatch(target, class string) Patch {
	return Patch{Op: PatchRemoveClass, Target: target, Key: class}
}

// NewSetAttrPatch creates a SetAttr patch.
func NewSetAttrPatch(target, key, value string) Patch {
	return Patch{Op: PatchSetAttr, Target: target, Key: key, Value: value}
}

// NewRemoveAttrPatch creates a RemoveAttr patch.
func NewRemoveAttrPatch(target, key string) Patch {
	return Patch{Op: PatchRemoveAttr, Target: target, Key: key}
}

// NewAllowSubmitPatch creates an AllowSubmit patch.
func NewAllowSubmitPatch(target string) Patch {
	return Patch{Op: PatchAllowSubmit, Target: target}
}
