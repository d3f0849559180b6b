package reader

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/EliCDavis/vector/vector3"
	"github.com/landate83/gopointpack/internal/data"
)

type plyFormat int

const (
	plyAscii plyFormat = iota
	plyBinaryLittleEndian
	plyBinaryBigEndian
)

type plyProperty struct {
	name      string
	size      int
	float     bool
	signed    bool
	list      bool
	countSize int
}

type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

type plyHeader struct {
	format   plyFormat
	elements []plyElement
}

// Scalar sizes of the PLY property types, plus whether values are floating
// point or signed. Unknown types yield size 0 which is rejected during
// header parsing.
func plyTypeInfo(typ string) (size int, float bool, signed bool) {
	switch typ {
	case "char", "int8":
		return 1, false, true
	case "uchar", "uint8":
		return 1, false, false
	case "short", "int16":
		return 2, false, true
	case "ushort", "uint16":
		return 2, false, false
	case "int", "int32":
		return 4, false, true
	case "uint", "uint32":
		return 4, false, false
	case "float", "float32":
		return 4, true, true
	case "double", "float64":
		return 8, true, true
	}
	return 0, false, false
}

// ReadPly reads a point cloud from a PLY file. Vertex records must carry
// x, y and z properties; colors are taken from red/green/blue channels or
// decoded from f_dc_* spherical harmonics coefficients, defaulting to
// opaque white when neither is present. A .ply path that is actually a ZIP
// archive containing a PLY member is unwrapped transparently.
func ReadPly(path string) (*data.PointCloud, error) {
	payload, err := plyPayload(path)
	if err != nil {
		return nil, err
	}

	return parsePly(path, payload)
}

// Returns the raw PLY bytes for path, looking inside ZIP archives
// masquerading as .ply files.
func plyPayload(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		// not an archive, treat as a plain PLY stream
		return raw, nil
	}

	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".ply") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &FormatError{Path: path, Reason: "cannot open archived ply member", Err: err}
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	return raw, nil
}

func parsePly(path string, payload []byte) (*data.PointCloud, error) {
	r := bufio.NewReader(bytes.NewReader(payload))

	header, err := parsePlyHeader(path, r)
	if err != nil {
		return nil, err
	}

	var vertex *plyElement
	for i := range header.elements {
		if header.elements[i].name == "vertex" {
			vertex = &header.elements[i]
			break
		}
	}
	if vertex == nil {
		return nil, &FormatError{Path: path, Reason: "no vertex element declared"}
	}

	prop := func(name string) int {
		for i, p := range vertex.properties {
			if p.name == name && !p.list {
				return i
			}
		}
		return -1
	}

	xi, yi, zi := prop("x"), prop("y"), prop("z")
	if xi < 0 || yi < 0 || zi < 0 {
		return nil, &FormatError{Path: path, Reason: "vertex element lacks x/y/z position properties"}
	}

	ri, gi, bi := prop("red"), prop("green"), prop("blue")
	hasRGB := ri >= 0 && gi >= 0 && bi >= 0
	d0, d1, d2 := prop("f_dc_0"), prop("f_dc_1"), prop("f_dc_2")
	hasSH := d0 >= 0 && d1 >= 0 && d2 >= 0

	cloud := data.NewEmptyPointCloud(vertex.count)
	values := make([]float64, len(vertex.properties))

	for _, element := range header.elements {
		if element.name != "vertex" {
			// elements declared ahead of the vertex data still have to be
			// consumed to keep the stream aligned
			if err := skipPlyElement(path, r, header.format, element); err != nil {
				return nil, err
			}
			continue
		}

		for rec := 0; rec < element.count; rec++ {
			if err := readPlyRecord(r, header.format, element, values); err != nil {
				return nil, &FormatError{
					Path:   path,
					Reason: "declared vertex count " + strconv.Itoa(element.count) + " does not match parsed records",
					Err:    err,
				}
			}

			color := data.White
			if hasRGB {
				color = data.RGB{
					R: clampChannel(values[ri]),
					G: clampChannel(values[gi]),
					B: clampChannel(values[bi]),
				}
			} else if hasSH {
				color = data.RGB{
					R: shToChannel(values[d0]),
					G: shToChannel(values[d1]),
					B: shToChannel(values[d2]),
				}
			}

			cloud.Append(vector3.New(values[xi], values[yi], values[zi]), color)
		}
	}

	return cloud, nil
}

func parsePlyHeader(path string, r *bufio.Reader) (*plyHeader, error) {
	magic, err := readPlyHeaderLine(r)
	if err != nil || magic != "ply" {
		return nil, &FormatError{Path: path, Reason: "missing ply magic line", Err: err}
	}

	header := &plyHeader{}
	seenFormat := false

	for {
		line, err := readPlyHeaderLine(r)
		if err != nil {
			return nil, &FormatError{Path: path, Reason: "truncated header", Err: err}
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "comment", "obj_info":
			// ignored
		case "format":
			if len(fields) < 2 {
				return nil, &FormatError{Path: path, Reason: "malformed format line"}
			}
			switch fields[1] {
			case "ascii":
				header.format = plyAscii
			case "binary_little_endian":
				header.format = plyBinaryLittleEndian
			case "binary_big_endian":
				header.format = plyBinaryBigEndian
			default:
				return nil, &FormatError{Path: path, Reason: "unknown ply format " + fields[1]}
			}
			seenFormat = true
		case "element":
			if len(fields) != 3 {
				return nil, &FormatError{Path: path, Reason: "malformed element line"}
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, &FormatError{Path: path, Reason: "invalid element count " + fields[2]}
			}
			header.elements = append(header.elements, plyElement{name: fields[1], count: count})
		case "property":
			if len(header.elements) == 0 {
				return nil, &FormatError{Path: path, Reason: "property declared before any element"}
			}
			element := &header.elements[len(header.elements)-1]
			if len(fields) == 5 && fields[1] == "list" {
				countSize, _, _ := plyTypeInfo(fields[2])
				size, float, signed := plyTypeInfo(fields[3])
				if countSize == 0 || size == 0 {
					return nil, &FormatError{Path: path, Reason: "unknown list property type in " + line}
				}
				element.properties = append(element.properties, plyProperty{
					name:      fields[4],
					size:      size,
					float:     float,
					signed:    signed,
					list:      true,
					countSize: countSize,
				})
			} else if len(fields) == 3 {
				size, float, signed := plyTypeInfo(fields[1])
				if size == 0 {
					return nil, &FormatError{Path: path, Reason: "unknown property type " + fields[1]}
				}
				element.properties = append(element.properties, plyProperty{
					name:   fields[2],
					size:   size,
					float:  float,
					signed: signed,
				})
			} else {
				return nil, &FormatError{Path: path, Reason: "malformed property line " + line}
			}
		case "end_header":
			if !seenFormat {
				return nil, &FormatError{Path: path, Reason: "header lacks a format line"}
			}
			return header, nil
		default:
			return nil, &FormatError{Path: path, Reason: "unexpected header line " + line}
		}
	}
}

func readPlyHeaderLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Reads one record of the given element, filling values index aligned with
// element.properties. List property payloads are consumed but reported as
// their length.
func readPlyRecord(r *bufio.Reader, format plyFormat, element plyElement, values []float64) error {
	if format == plyAscii {
		return readPlyRecordAscii(r, element, values)
	}

	order := binary.ByteOrder(binary.LittleEndian)
	if format == plyBinaryBigEndian {
		order = binary.BigEndian
	}

	for i, p := range element.properties {
		if p.list {
			n, err := readPlyScalar(r, order, p.countSize, false, false)
			if err != nil {
				return err
			}
			if _, err := io.CopyN(io.Discard, r, int64(n)*int64(p.size)); err != nil {
				return err
			}
			values[i] = n
			continue
		}

		v, err := readPlyScalar(r, order, p.size, p.float, p.signed)
		if err != nil {
			return err
		}
		values[i] = v
	}

	return nil
}

func readPlyRecordAscii(r *bufio.Reader, element plyElement, values []float64) error {
	fields, err := readPlyDataLine(r)
	if err != nil {
		return err
	}

	next := 0
	pop := func() (float64, error) {
		if next >= len(fields) {
			return 0, io.ErrUnexpectedEOF
		}
		v, err := strconv.ParseFloat(fields[next], 64)
		next++
		return v, err
	}

	for i, p := range element.properties {
		if p.list {
			n, err := pop()
			if err != nil {
				return err
			}
			for j := 0; j < int(n); j++ {
				if _, err := pop(); err != nil {
					return err
				}
			}
			values[i] = n
			continue
		}

		v, err := pop()
		if err != nil {
			return err
		}
		values[i] = v
	}

	return nil
}

// Reads the next non empty data line of an ascii PLY body
func readPlyDataLine(r *bufio.Reader) ([]string, error) {
	for {
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func readPlyScalar(r *bufio.Reader, order binary.ByteOrder, size int, float bool, signed bool) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, err
	}

	switch size {
	case 1:
		if signed {
			return float64(int8(buf[0])), nil
		}
		return float64(buf[0]), nil
	case 2:
		v := order.Uint16(buf[:2])
		if signed {
			return float64(int16(v)), nil
		}
		return float64(v), nil
	case 4:
		v := order.Uint32(buf[:4])
		if float {
			return float64(math.Float32frombits(v)), nil
		}
		if signed {
			return float64(int32(v)), nil
		}
		return float64(v), nil
	case 8:
		return math.Float64frombits(order.Uint64(buf[:8])), nil
	}

	return 0, io.ErrUnexpectedEOF
}

// Consumes a whole non vertex element from the stream
func skipPlyElement(path string, r *bufio.Reader, format plyFormat, element plyElement) error {
	values := make([]float64, len(element.properties))
	for i := 0; i < element.count; i++ {
		if err := readPlyRecord(r, format, element, values); err != nil {
			return &FormatError{Path: path, Reason: "truncated " + element.name + " element", Err: err}
		}
	}
	return nil
}
