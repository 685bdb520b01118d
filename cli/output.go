package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"consenc/config"
	"consenc/psbt"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// maxCellBytes bounds how much of a value is shown in a table cell.
const maxCellBytes = 32

type ProprietaryView struct {
	Prefix  string `json:"prefix"`
	Subtype uint64 `json:"subtype"`
	Key     string `json:"key"`
}

type PairView struct {
	Map         int              `json:"map"`
	Index       int              `json:"index"`
	Type        uint64           `json:"type"`
	KeyData     string           `json:"key_data"`
	Value       string           `json:"value"`
	Proprietary *ProprietaryView `json:"proprietary,omitempty"`
}

type MapsView struct {
	Source string     `json:"source"`
	Bytes  uint64     `json:"bytes"`
	Maps   int        `json:"maps"`
	Pairs  []PairView `json:"pairs"`
}

func NewProprietaryView(pk psbt.ProprietaryKey[psbt.ProprietaryType]) *ProprietaryView {
	return &ProprietaryView{
		Prefix:  hex.EncodeToString(pk.Prefix),
		Subtype: pk.Subtype.Uint64(),
		Key:     hex.EncodeToString(pk.Key),
	}
}

func NewPairView(mapIdx int, pairIdx int, pair psbt.Pair) PairView {
	view := PairView{
		Map:     mapIdx,
		Index:   pairIdx,
		Type:    pair.Key.TypeValue,
		KeyData: hex.EncodeToString(pair.Key.KeyData),
		Value:   hex.EncodeToString(pair.Value),
	}
	if pair.Key.TypeValue == psbt.ProprietaryKeyType {
		if pk, err := psbt.ProprietaryKeyFromKey[psbt.ProprietaryType](pair.Key); err == nil {
			view.Proprietary = NewProprietaryView(pk)
		}
	}
	return view
}

func NewMapsView(source string, n uint64, maps [][]psbt.Pair) *MapsView {
	view := &MapsView{
		Source: source,
		Bytes:  n,
		Maps:   len(maps),
		Pairs:  []PairView{},
	}
	for i, pairs := range maps {
		for j, pair := range pairs {
			view.Pairs = append(view.Pairs, NewPairView(i, j, pair))
		}
	}
	return view
}

// WriteJSON writes v as a single line of JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrap(err, "error encoding output")
	}
	return nil
}

// WriteFields renders name/value rows.
func WriteFields(w io.Writer, format string, fields [][2]string) error {
	if format == config.OutputFormatJSON {
		out := make(map[string]string, len(fields))
		for _, f := range fields {
			out[f[0]] = f[1]
		}
		return WriteJSON(w, out)
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	for _, f := range fields {
		table.Append([]string{f[0], f[1]})
	}
	table.Render()
	return nil
}

func WriteMaps(w io.Writer, format string, view *MapsView) error {
	if format == config.OutputFormatJSON {
		return WriteJSON(w, view)
	}

	fmt.Fprintf(w, "%s: %d maps, %d pairs, %d bytes\n", view.Source, view.Maps, len(view.Pairs), view.Bytes)
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Map", "Index", "Type", "Key Data", "Value"})
	for _, p := range view.Pairs {
		keyData := p.KeyData
		if p.Proprietary != nil {
			keyData = fmt.Sprintf("prefix=%s subtype=%d key=%s", p.Proprietary.Prefix, p.Proprietary.Subtype, p.Proprietary.Key)
		}
		table.Append([]string{
			strconv.Itoa(p.Map),
			strconv.Itoa(p.Index),
			fmt.Sprintf("%#x", p.Type),
			keyData,
			truncateHex(p.Value),
		})
	}
	table.Render()
	return nil
}

func truncateHex(s string) string {
	if len(s) <= maxCellBytes*2 {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:maxCellBytes*2], len(s)/2)
}
