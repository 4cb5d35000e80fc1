package uml

import "github.com/jinyoung/classdiag/graph"

// VoidReturnType is the sentinel used when a method declares no return type.
const VoidReturnType = "void"

// Field is one attribute row of a class box.
type Field struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Visibility string `json:"visibility"`
}

// Parameter is one method parameter, in declaration order.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Method is one operation row of a class box.
type Method struct {
	Name        string      `json:"name"`
	ReturnType  string      `json:"returnType"`
	Visibility  string      `json:"visibility"`
	Parameters  []Parameter `json:"parameters"`
	Constructor bool        `json:"isConstructor"`
}

// Class is the read-only UML projection of a class-like graph node.
type Class struct {
	ID        string          `json:"id"`
	Name      string          `json:"className"`
	Directory string          `json:"directory"`
	Kind      graph.ClassKind `json:"classType"`
	Abstract  bool            `json:"isAbstract"`
	Fields    []Field         `json:"fields"`
	Methods   []Method        `json:"methods"`
}

// Relationship is a typed, labeled edge between two projected classes.
type Relationship struct {
	ID           string `json:"id"`
	SourceID     string `json:"source"`
	TargetID     string `json:"target"`
	SourceName   string `json:"sourceName"`
	TargetName   string `json:"targetName"`
	Type         string `json:"type"`
	Label        string `json:"label,omitempty"`
	Multiplicity string `json:"multiplicity,omitempty"`
}

// ClassDiagram is the artifact handed to layout and rendering.
type ClassDiagram struct {
	Classes       []Class        `json:"classes"`
	Relationships []Relationship `json:"relationships"`
}
