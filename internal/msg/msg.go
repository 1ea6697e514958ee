// Package msg implements MessageBundle, the LBL1/ATR1/TXT2 trio carried
// inside a MsgStdBn bundle (spec.md §4.5, §3): a rebuildable label hash
// index, verbatim-preserved attribute rows, and UTF-16LE message payloads.
//
// Grounded on internal/msgbn for the outer section framing and on
// golang.org/x/text/encoding/unicode for the UTF-16LE codec, in place of a
// hand-rolled UTF-16 encoder — the teacher has no text-encoding need at all,
// so this reaches directly into the rest of the retrieval pack's stack for
// it (see DESIGN.md's domain-stack wiring).
package msg

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/rickfay/albw-randomizer/internal/msgbn"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// LabelSlots is the standard hash-table slot count for message bundles
// (spec.md §3: "101 slots for message bundles, 29 for parameter bundles").
const LabelSlots = 101

const labelHashMultiplier = 0x492

func labelHash(label string, slots uint32) uint32 {
	var h uint32
	for i := 0; i < len(label); i++ {
		h = h*labelHashMultiplier + uint32(label[i])
	}
	return h % slots
}

// Bundle is a parsed MessageBundle: labels mapped to message indices,
// opaque per-message attribute rows (preserved verbatim), and the decoded
// message strings themselves.
type Bundle struct {
	labels    map[string]uint32
	attrRows  [][]byte
	messages  []string
}

// Parse reads LBL1/ATR1/TXT2 out of an already-framed MsgBn bundle.
func Parse(b *msgbn.Bundle) (*Bundle, error) {
	lbl1, ok := b.Section("LBL1")
	if !ok {
		return nil, xerrors.BadFormat("msg.Parse", "missing LBL1 section")
	}
	atr1, ok := b.Section("ATR1")
	if !ok {
		return nil, xerrors.BadFormat("msg.Parse", "missing ATR1 section")
	}
	txt2, ok := b.Section("TXT2")
	if !ok {
		return nil, xerrors.BadFormat("msg.Parse", "missing TXT2 section")
	}

	messages, err := decodeTXT2(txt2.Payload)
	if err != nil {
		return nil, err
	}
	attrRows, err := decodeATR1(atr1.Payload, len(messages))
	if err != nil {
		return nil, err
	}
	labels, err := decodeLBL1(lbl1.Payload)
	if err != nil {
		return nil, err
	}

	return &Bundle{labels: labels, attrRows: attrRows, messages: messages}, nil
}

func le32(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func putLE32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

func decodeLBL1(payload []byte) (map[string]uint32, error) {
	if len(payload) < 4 {
		return nil, xerrors.Truncated("msg.LBL1", 0, 4, len(payload))
	}
	slots := le32(payload, 0)
	labels := make(map[string]uint32)
	slotTableOff := 4
	if slotTableOff+int(slots)*4 > len(payload) {
		return nil, xerrors.Truncated("msg.LBL1.slots", slotTableOff, int(slots)*4, len(payload)-slotTableOff)
	}
	for s := uint32(0); s < slots; s++ {
		entryOff := le32(payload, slotTableOff+int(s)*4)
		for entryOff != 0xFFFFFFFF {
			if int(entryOff)+5 > len(payload) {
				return nil, xerrors.BadFormat("msg.LBL1", "bucket entry out of range")
			}
			nameLen := int(payload[entryOff])
			nameStart := int(entryOff) + 1
			if nameStart+nameLen+8 > len(payload) {
				return nil, xerrors.BadFormat("msg.LBL1", "label name out of range")
			}
			name := string(payload[nameStart : nameStart+nameLen])
			msgIdx := le32(payload, nameStart+nameLen)
			next := le32(payload, nameStart+nameLen+4)
			labels[name] = msgIdx
			entryOff = next
		}
	}
	return labels, nil
}

func decodeATR1(payload []byte, messageCount int) ([][]byte, error) {
	if len(payload) < 4 {
		return nil, xerrors.Truncated("msg.ATR1", 0, 4, len(payload))
	}
	count := le32(payload, 0)
	if int(count) != messageCount {
		return nil, xerrors.BadFormat("msg.ATR1", "attribute count does not match TXT2 message count")
	}
	rest := payload[4:]
	if count == 0 {
		return nil, nil
	}
	if len(rest)%int(count) != 0 {
		return nil, xerrors.BadFormat("msg.ATR1", "attribute payload not evenly divisible by count")
	}
	rowLen := len(rest) / int(count)
	rows := make([][]byte, count)
	for i := range rows {
		rows[i] = append([]byte(nil), rest[i*rowLen:(i+1)*rowLen]...)
	}
	return rows, nil
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeTXT2(payload []byte) ([]string, error) {
	if len(payload) < 4 {
		return nil, xerrors.Truncated("msg.TXT2", 0, 4, len(payload))
	}
	count := le32(payload, 0)
	offTableOff := 4
	if offTableOff+int(count)*4 > len(payload) {
		return nil, xerrors.Truncated("msg.TXT2.offsets", offTableOff, int(count)*4, len(payload)-offTableOff)
	}
	dec := utf16le.NewDecoder()
	out := make([]string, count)
	for i := uint32(0); i < count; i++ {
		// offsets are relative to the section-count field, i.e. byte 0.
		start := le32(payload, offTableOff+int(i)*4)
		end := start
		for int(end)+1 < len(payload) && !(payload[end] == 0 && payload[end+1] == 0) {
			end += 2
		}
		if int(start) > len(payload) || int(end) > len(payload) {
			return nil, xerrors.BadFormat("msg.TXT2", "message offset out of range")
		}
		decoded, err := dec.Bytes(payload[start:end])
		if err != nil {
			return nil, xerrors.BadFormat("msg.TXT2", "invalid UTF-16LE payload: "+err.Error())
		}
		out[i] = string(decoded)
	}
	return out, nil
}

// Get looks up a message by label text in the label index decoded from
// LBL1 (spec.md §4.5).
func (b *Bundle) Get(label string) (string, bool) {
	idx, ok := b.labels[label]
	if !ok {
		return "", false
	}
	if int(idx) >= len(b.messages) {
		return "", false
	}
	return b.messages[idx], true
}

// Set replaces the message referenced by label. Adding or removing labels is
// out of scope (spec.md §4.5).
func (b *Bundle) Set(label, value string) error {
	idx, ok := b.labels[label]
	if !ok {
		return xerrors.IO("msg.Set", errLabelNotFound(label))
	}
	if int(idx) >= len(b.messages) {
		return xerrors.BadFormat("msg.Set", "label index out of range")
	}
	b.messages[idx] = value
	return nil
}

type labelNotFoundError string

func (e labelNotFoundError) Error() string { return "label not found: " + string(e) }
func errLabelNotFound(l string) error      { return labelNotFoundError(l) }

// ToMsgBn re-serializes LBL1 (bucket offsets rebuilt from scratch against
// LabelSlots), ATR1 (rows preserved verbatim), and TXT2 (offsets and NUL
// terminators recomputed), and returns sections ready to splice into a
// msgbn.Bundle.
func (b *Bundle) ToMsgBn() (lbl1, atr1, txt2 []byte, err error) {
	lbl1 = b.encodeLBL1()
	atr1, err = b.encodeATR1()
	if err != nil {
		return nil, nil, nil, err
	}
	txt2, err = b.encodeTXT2()
	if err != nil {
		return nil, nil, nil, err
	}
	return lbl1, atr1, txt2, nil
}

func (b *Bundle) encodeLBL1() []byte {
	type labelEntry struct {
		name string
		idx  uint32
	}
	buckets := make([][]labelEntry, LabelSlots)
	for name, idx := range b.labels {
		h := labelHash(name, LabelSlots)
		buckets[h] = append(buckets[h], labelEntry{name, idx})
	}

	slotTableOff := 4
	bodyOff := slotTableOff + LabelSlots*4
	var body []byte
	slotOffsets := make([]uint32, LabelSlots)
	for s, entries := range buckets {
		if len(entries) == 0 {
			slotOffsets[s] = 0xFFFFFFFF
			continue
		}
		slotOffsets[s] = uint32(bodyOff + len(body))
		for i, e := range entries {
			entry := make([]byte, 1+len(e.name)+8)
			entry[0] = byte(len(e.name))
			copy(entry[1:], e.name)
			putLE32(entry, 1+len(e.name), e.idx)
			next := uint32(0xFFFFFFFF)
			if i+1 < len(entries) {
				// next entry in this bucket follows immediately.
				next = uint32(bodyOff + len(body) + len(entry))
			}
			putLE32(entry, 1+len(e.name)+4, next)
			body = append(body, entry...)
		}
	}

	out := make([]byte, bodyOff)
	putLE32(out, 0, LabelSlots)
	for s, off := range slotOffsets {
		putLE32(out, slotTableOff+s*4, off)
	}
	out = append(out, body...)
	return out
}

func (b *Bundle) encodeATR1() ([]byte, error) {
	if len(b.attrRows) != len(b.messages) {
		return nil, xerrors.BadFormat("msg.ATR1", "attribute row count must match message count")
	}
	out := make([]byte, 4)
	putLE32(out, 0, uint32(len(b.attrRows)))
	for _, row := range b.attrRows {
		out = append(out, row...)
	}
	return out, nil
}

func (b *Bundle) encodeTXT2() ([]byte, error) {
	enc := utf16le.NewEncoder()
	offTableOff := 4
	offTableLen := len(b.messages) * 4
	bodyOff := offTableOff + offTableLen

	var body []byte
	offsets := make([]uint32, len(b.messages))
	for i, m := range b.messages {
		encoded, err := enc.Bytes([]byte(m))
		if err != nil {
			return nil, xerrors.BadFormat("msg.TXT2", "failed to encode message as UTF-16LE: "+err.Error())
		}
		offsets[i] = uint32(bodyOff + len(body))
		body = append(body, encoded...)
		body = append(body, 0, 0) // NUL terminator
	}

	out := make([]byte, bodyOff)
	putLE32(out, 0, uint32(len(b.messages)))
	for i, off := range offsets {
		putLE32(out, offTableOff+i*4, off)
	}
	out = append(out, body...)
	return out, nil
}
