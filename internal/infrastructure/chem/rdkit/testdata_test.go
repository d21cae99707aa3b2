package rdkit

// ethanolPDB is RDKit's MolToPDBBlock output for CCO after hydrogen addition,
// ETKDG embedding and UFF optimisation.
const ethanolPDB = `HETATM    1  C1  UNL     1      -0.888   0.164  -0.093  1.00  0.00           C  
HETATM    2  C2  UNL     1       0.522  -0.372  -0.152  1.00  0.00           C  
HETATM    3  O1  UNL     1       1.320   0.397   0.690  1.00  0.00           O  
HETATM    4  H1  UNL     1      -1.023   1.001  -0.808  1.00  0.00           H  
HETATM    5  H2  UNL     1      -1.595  -0.650  -0.348  1.00  0.00           H  
HETATM    6  H3  UNL     1      -1.117   0.527   0.930  1.00  0.00           H  
HETATM    7  H4  UNL     1       0.875  -0.318  -1.206  1.00  0.00           H  
HETATM    8  H5  UNL     1       0.537  -1.433   0.178  1.00  0.00           H  
HETATM    9  H6  UNL     1       1.369   1.284   0.316  1.00  0.00           H  
CONECT    1    2    4    5    6
CONECT    2    3    7    8
CONECT    3    9
END
`

var ethanolDescriptors = DescriptorPayload{
	MolWt:             46.069,
	MolLogP:           -0.0014,
	NumHDonors:        1,
	NumHAcceptors:     1,
	NumRotatableBonds: 0,
	NumAromaticRings:  0,
}

//Personal.AI order the ending
