package burpxml

import (
	"io"

	"github.com/beevik/etree"
)

// Export writes items back out as a Burp-compatible history document, so a
// loaded capture can be round-tripped. Exports are bounded by what was
// loaded, so building the document in memory is fine here, unlike reading,
// where the input size is unknown.
func Export(w io.Writer, meta Meta, items []RawItem) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("items")
	if meta.BurpVersion != "" {
		root.CreateAttr("burpVersion", meta.BurpVersion)
	}
	if !meta.ExportTime.IsZero() {
		root.CreateAttr("exportTime", meta.ExportTime.Format(TimeLayout))
	}

	for i := range items {
		writeItem(root, &items[i])
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func writeItem(root *etree.Element, item *RawItem) {
	el := root.CreateElement("item")

	el.CreateElement("time").CreateText(item.Time)
	el.CreateElement("url").CreateCData(item.URL)

	host := el.CreateElement("host")
	if item.HostIP != "" {
		host.CreateAttr("ip", item.HostIP)
	}
	host.CreateText(item.Host)

	el.CreateElement("port").CreateText(item.Port)
	el.CreateElement("protocol").CreateText(item.Protocol)
	el.CreateElement("method").CreateCData(item.Method)
	el.CreateElement("path").CreateCData(item.Path)

	// Burp writes the literal string "null" for a missing extension.
	ext := item.Extension
	if ext == "" {
		ext = "null"
	}
	el.CreateElement("extension").CreateText(ext)

	writeBlob(el, "request", item.Request)
	if item.Status != "" {
		el.CreateElement("status").CreateText(item.Status)
	}
	if item.ResponseLength != "" {
		el.CreateElement("responselength").CreateText(item.ResponseLength)
	}
	el.CreateElement("mimetype").CreateText(item.MimeType)
	writeBlob(el, "response", item.Response)
	el.CreateElement("comment").CreateText(item.Comment)

	if item.Highlight != "" {
		el.CreateElement("highlight").CreateText(item.Highlight)
	}
	for name, value := range item.Extra {
		el.CreateElement(name).CreateText(value)
	}
}

// writeBlob writes a payload element. An absent payload writes nothing:
// Burp omits the tag when no message was captured, and an empty element
// would read back as present-but-empty.
func writeBlob(el *etree.Element, name string, b Blob) {
	if !b.Present {
		return
	}
	payload := el.CreateElement(name)
	if b.Base64 {
		payload.CreateAttr("base64", "true")
	} else {
		payload.CreateAttr("base64", "false")
	}
	payload.CreateCData(string(b.Data))
}
