package view

type Attribute struct{ Key, Val string }

type Node struct{}

func Attr(key, value any) Attribute { return Attribute{} }

func ID(value any) Attribute { return Attribute{} }

func El(tag string, children ...any) Node { return Node{} }
