package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the details a user fills in on the dashboard. Only email is
// required; any field the client sends beyond the named ones is kept in Extra
// and stored alongside them.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Education string             `bson:"education,omitempty" json:"education,omitempty"`
	Location  string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn  string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Extra     bson.M             `bson:",inline" json:"-"`
}

var profileFields = []string{"_id", "email", "name", "education", "location", "phone", "linkedin"}

// profileJSON has Profile's fields without its JSON methods
type profileJSON Profile

func (p *Profile) UnmarshalJSON(data []byte) error {
	var named profileJSON
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}
	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range profileFields {
		delete(all, key)
	}

	*p = Profile(named)
	p.Extra = nil
	if len(all) > 0 {
		p.Extra = bson.M(all)
	}
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	named, err := json.Marshal(profileJSON(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return named, nil
	}

	out := make(map[string]interface{}, len(p.Extra)+len(profileFields))
	for k, v := range p.Extra {
		out[k] = v
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(named, &fields); err != nil {
		return nil, err
	}
	// named fields win over a same-named extra
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}
