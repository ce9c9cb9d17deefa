package enrichment

import (
	"strings"

	"github.com/go-faster/jx"
)

// ExtractText собирает весь текст из candidates[0].content ответа generateContent.
// content бывает объектом с parts[] и text либо массивом таких объектов.
// Ошибки разбора не прерывают сборку: возвращается то, что удалось прочитать.
func ExtractText(body []byte) string {
	var out strings.Builder

	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return ""
	}

	_ = d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "candidates" || d.Next() != jx.Array {
			return d.Skip()
		}

		first := true

		return d.Arr(func(d *jx.Decoder) error {
			if !first {
				return d.Skip()
			}

			first = false

			if d.Next() != jx.Object {
				return d.Skip()
			}

			return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
				if string(key) != "content" {
					return d.Skip()
				}

				return readContent(d, &out)
			})
		})
	})

	return out.String()
}

func readContent(d *jx.Decoder, out *strings.Builder) error {
	//nolint:exhaustive // остальные типы пропускаются
	switch d.Next() {
	case jx.Array:
		return d.Arr(func(d *jx.Decoder) error {
			text, err := readFragments(d, true)
			out.WriteString(text)

			return err
		})
	case jx.Object:
		text, err := readFragments(d, false)
		out.WriteString(text)

		return err
	default:
		return d.Skip()
	}
}

// readFragments читает text и parts[].text одного объекта. textFirst задаёт
// порядок склейки: у элементов массива text идёт раньше parts, у объекта позже.
func readFragments(d *jx.Decoder, textFirst bool) (string, error) {
	if d.Next() != jx.Object {
		return "", d.Skip()
	}

	var text, parts strings.Builder

	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "text":
			return readString(d, &text)
		case "parts":
			if d.Next() != jx.Array {
				return d.Skip()
			}

			return d.Arr(func(d *jx.Decoder) error {
				if d.Next() != jx.Object {
					return d.Skip()
				}

				return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
					if string(key) != "text" {
						return d.Skip()
					}

					return readString(d, &parts)
				})
			})
		default:
			return d.Skip()
		}
	})

	if textFirst {
		return text.String() + parts.String(), err
	}

	return parts.String() + text.String(), err
}

func readString(d *jx.Decoder, out *strings.Builder) error {
	if d.Next() != jx.String {
		return d.Skip()
	}

	s, err := d.Str()
	if err != nil {
		return err
	}

	out.WriteString(s)

	return nil
}
