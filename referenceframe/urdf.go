package referenceframe

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"
)

// URDFExtension is the file extension associated with URDF files.
const URDFExtension = "urdf"

// URDFConfig represents the fields of a Universal Robot Description Format (URDF) file that
// matter for joint-space planning.
type URDFConfig struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []URDFLink  `xml:"link"`
	Joints  []URDFJoint `xml:"joint"`
}

// URDFLink is a struct which details the XML used in a URDF link element.
type URDFLink struct {
	XMLName xml.Name `xml:"link"`
	Name    string   `xml:"name,attr"`
}

// URDFLimit holds joint limits. Revolute limits are in radians, prismatic limits in meters.
type URDFLimit struct {
	XMLName xml.Name `xml:"limit"`
	Lower   float64  `xml:"lower,attr"`
	Upper   float64  `xml:"upper,attr"`
}

// URDFFrame names the link on one side of a joint.
type URDFFrame struct {
	Link string `xml:"link,attr"`
}

// URDFJoint is a struct which details the XML used in a URDF joint element.
type URDFJoint struct {
	XMLName xml.Name   `xml:"joint"`
	Name    string     `xml:"name,attr"`
	Type    string     `xml:"type,attr"`
	Parent  URDFFrame  `xml:"parent"`
	Child   URDFFrame  `xml:"child"`
	Limit   *URDFLimit `xml:"limit,omitempty"`
}

// ParseURDF converts URDF XML data into a Model. The model gets one group, named after the model,
// holding every non-fixed joint in document order.
func ParseURDF(xmlData []byte, modelName string) (*Model, error) {
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}
	urdf := &URDFConfig{}
	if err := xml.Unmarshal(xmlData, urdf); err != nil {
		return nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDFConfig struct")
	}
	if modelName == "" {
		modelName = urdf.Name
	}

	links := make(map[string]bool, len(urdf.Links))
	for _, l := range urdf.Links {
		links[l.Name] = true
	}

	joints := make([]Joint, 0, len(urdf.Joints))
	for _, jointElem := range urdf.Joints {
		for _, linkName := range []string{jointElem.Parent.Link, jointElem.Child.Link} {
			if !links[linkName] {
				return nil, errors.Errorf("joint %q references link %q which is not defined", jointElem.Name, linkName)
			}
		}

		// Slightly different limits handling for continuous, revolute, and prismatic joints
		limit := Unbounded()
		switch jointElem.Type {
		case RevoluteJoint:
			if jointElem.Limit == nil {
				return nil, errors.Errorf("revolute joint %q has no limit element", jointElem.Name)
			}
			limit = Limit{Min: jointElem.Limit.Lower, Max: jointElem.Limit.Upper}
		case PrismaticJoint:
			if jointElem.Limit != nil {
				limit = Limit{Min: jointElem.Limit.Lower, Max: jointElem.Limit.Upper}
			}
		case ContinuousJoint, FixedJoint:
		default:
			return nil, NewUnsupportedJointTypeError(jointElem.Type)
		}

		j, err := NewJoint(jointElem.Name, jointElem.Type, limit)
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}

	m, err := NewModel(modelName, joints)
	if err != nil {
		return nil, err
	}
	if err := m.AddGroup(modelName, m.VariableNames()); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseURDFFile will read a given file and parse the contained URDF XML data into a Model.
func ParseURDFFile(filename, modelName string) (*Model, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return ParseURDF(xmlData, modelName)
}
