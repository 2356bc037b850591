package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const infoDocText = "STUDENT DETAILS " +
	"UMIS No : 123456 NAME OF THE CANDIDATE : ANITA R REGISTER NO : 920423104001 " +
	"DATE OF BIRTH : 15/06/2003 GENDER : F PROGRAMME : B.E. Computer Science and Engineering " +
	"UMIS No : 123457 REGISTER NO : 920423104002 NAME OF THE CANDIDATE : KUMAR S " +
	"GENDER : M PROGRAMME : B.E. Electronics"

func TestInfoExtraction(t *testing.T) {
	recs := Info(infoDocText)
	require.Len(t, recs, 2)

	first := recs[0]
	require.Equal(t, "123456", first.UmisNo)
	require.Equal(t, "920423104001", first.RegisterNo)
	require.Equal(t, "ANITA R", first.Name)
	require.Equal(t, "15-Jun-2003", first.DOB)
	require.Equal(t, "FEMALE", first.Gender)
	require.Equal(t, "B.E. COMPUTER SCIENCE AND ENGINEERING", first.Programme)
}

func TestInfoLabelOrderVariant(t *testing.T) {
	// Second block lists register number before candidate name.
	recs := Info(infoDocText)
	second := recs[1]
	require.Equal(t, "123457", second.UmisNo)
	require.Equal(t, "920423104002", second.RegisterNo)
	require.Equal(t, "KUMAR S", second.Name)
	require.Equal(t, "MALE", second.Gender)
	require.Equal(t, "B.E. ELECTRONICS", second.Programme)
}

func TestInfoPartialRecordRetained(t *testing.T) {
	recs := Info("UMIS No : 123458 NAME OF THE CANDIDATE : RAJ T REGISTER NO : 920423104003")
	require.Len(t, recs, 1)
	require.Equal(t, "RAJ T", recs[0].Name)
	require.Empty(t, recs[0].DOB)
	require.Empty(t, recs[0].Gender)
	require.Empty(t, recs[0].Programme)
}

func TestInfoUnlabeledBlockKeepsAnchor(t *testing.T) {
	recs := Info("UMIS No : 123459 illegible scan content")
	require.Len(t, recs, 1)
	require.Equal(t, "123459", recs[0].UmisNo)
	require.Empty(t, recs[0].RegisterNo)
	require.Empty(t, recs[0].Name)
}
