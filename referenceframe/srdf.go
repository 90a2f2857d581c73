package referenceframe

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// SRDFConfig holds the group definitions of a Semantic Robot Description Format file. Only
// joint-list groups are supported.
type SRDFConfig struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Groups  []SRDFGroup `xml:"group"`
}

// SRDFGroup is a named list of joints.
type SRDFGroup struct {
	Name   string      `xml:"name,attr"`
	Joints []SRDFJoint `xml:"joint"`
	Chains []struct{}  `xml:"chain"`
}

// SRDFJoint names a joint within a group.
type SRDFJoint struct {
	Name string `xml:"name,attr"`
}

// AddSRDFGroups parses SRDF XML data and defines its groups on the model.
func AddSRDFGroups(m *Model, xmlData []byte) error {
	srdf := &SRDFConfig{}
	if err := xml.Unmarshal(xmlData, srdf); err != nil {
		return errors.Wrap(err, "failed to parse SRDF data")
	}
	for _, g := range srdf.Groups {
		if len(g.Chains) > 0 {
			return errors.Errorf("group %q: chain groups are not supported, list joints instead", g.Name)
		}
		names := lo.Map(g.Joints, func(j SRDFJoint, _ int) string { return j.Name })
		if err := m.AddGroup(g.Name, names); err != nil {
			return err
		}
	}
	return nil
}

// AddSRDFGroupsFromFile reads an SRDF file and defines its groups on the model.
func AddSRDFGroupsFromFile(m *Model, filename string) error {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "failed to read SRDF file")
	}
	return AddSRDFGroups(m, xmlData)
}
