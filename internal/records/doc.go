package records

// Field keys as stored in the document store. They match the historical
// JSON attribute names, so records written by earlier revisions of the
// system keep reading back unchanged.
const (
	FieldName        = "name"
	FieldCharge      = "charge"
	FieldPrison      = "prison"
	FieldFamily      = "family"
	FieldResidence   = "residence"
	FieldYears       = "years"
	FieldFrom        = "from"
	FieldTo          = "to"
	FieldChildren    = "children"
	FieldEducation   = "education"
	FieldSubmissions = "submissions"
	FieldPhone       = "phone"
	FieldNationalID  = "nationalId"
	FieldSignature   = "signature"
	FieldReleaseDate = "releaseDate"
	FieldRole        = "role"

	// FieldEmbeddedID is the record's own key duplicated inside the
	// document by some historical writers. The reconciler matches on it.
	FieldEmbeddedID = "id"
)

// Doc flattens p into store fields. The key is never written into the
// document; it lives beside it.
func (p Prisoner) Doc() map[string]string {
	return map[string]string{
		FieldName:        p.Name,
		FieldCharge:      p.Charge,
		FieldPrison:      p.Prison,
		FieldFamily:      p.Family,
		FieldResidence:   p.Residence,
		FieldYears:       p.Years,
		FieldFrom:        p.From,
		FieldTo:          p.To,
		FieldChildren:    p.Children,
		FieldEducation:   p.Education,
		FieldSubmissions: p.Submissions,
		FieldPhone:       p.Phone,
		FieldNationalID:  p.NationalID,
		FieldSignature:   p.Signature,
	}
}

// PrisonerFromDoc rebuilds a Prisoner from a stored document.
func PrisonerFromDoc(id string, doc map[string]string) Prisoner {
	return Prisoner{
		ID:          id,
		Name:        doc[FieldName],
		Charge:      doc[FieldCharge],
		Prison:      doc[FieldPrison],
		Family:      doc[FieldFamily],
		Residence:   doc[FieldResidence],
		Years:       doc[FieldYears],
		From:        doc[FieldFrom],
		To:          doc[FieldTo],
		Children:    doc[FieldChildren],
		Education:   doc[FieldEducation],
		Submissions: doc[FieldSubmissions],
		Phone:       doc[FieldPhone],
		NationalID:  doc[FieldNationalID],
		Signature:   doc[FieldSignature],
	}
}

func (p ReleasedPrisoner) Doc() map[string]string {
	return map[string]string{
		FieldName:        p.Name,
		FieldCharge:      p.Charge,
		FieldPrison:      p.Prison,
		FieldFamily:      p.Family,
		FieldResidence:   p.Residence,
		FieldReleaseDate: p.ReleaseDate,
		FieldChildren:    p.Children,
		FieldEducation:   p.Education,
		FieldSubmissions: p.Submissions,
		FieldPhone:       p.Phone,
		FieldNationalID:  p.NationalID,
		FieldSignature:   p.Signature,
	}
}

// ReleasedFromDoc rebuilds a ReleasedPrisoner from a stored document.
func ReleasedFromDoc(id string, doc map[string]string) ReleasedPrisoner {
	return ReleasedPrisoner{
		ID:          id,
		Name:        doc[FieldName],
		Charge:      doc[FieldCharge],
		Prison:      doc[FieldPrison],
		Family:      doc[FieldFamily],
		Residence:   doc[FieldResidence],
		ReleaseDate: doc[FieldReleaseDate],
		Children:    doc[FieldChildren],
		Education:   doc[FieldEducation],
		Submissions: doc[FieldSubmissions],
		Phone:       doc[FieldPhone],
		NationalID:  doc[FieldNationalID],
		Signature:   doc[FieldSignature],
	}
}

func (u User) Doc() map[string]string {
	return map[string]string{
		FieldName: u.Name,
	}
}

// UserFromDoc rebuilds a User. The role comes from the group the document
// was read out of, not from the document itself.
func UserFromDoc(id string, doc map[string]string, role Role) User {
	return User{ID: id, Name: doc[FieldName], Role: role}
}
