package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"newt/internal/ast"
)

// WalkAST recursively serializes an AST into a machine-centric map structure.
// This output is designed for stability, canonical representation, and
// tool-chain consumption.
func WalkAST(node ast.Node) interface{} {
	switch n := node.(type) {
	case nil:
		return nil

	case *ast.Program:
		return map[string]interface{}{
			"type": "Program",
			"body": WalkAST(n.Body),
		}

	case *ast.Block:
		instructions := make([]interface{}, len(n.Instructions))
		for i, ins := range n.Instructions {
			instructions[i] = WalkAST(ins)
		}
		return map[string]interface{}{
			"type":         "Block",
			"line":         n.Token.Line,
			"instructions": instructions,
		}

	case *ast.IntegerLiteral:
		return map[string]interface{}{
			"type":  "IntegerLiteral",
			"line":  n.Token.Line,
			"value": n.Value,
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":  "StringLiteral",
			"line":  n.Token.Line,
			"value": n.Value,
		}

	case *ast.LocalVarAccess:
		return map[string]interface{}{
			"type": "LocalVarAccess",
			"line": n.Token.Line,
			"name": n.Name,
		}

	case *ast.LocalVarAssignment:
		return map[string]interface{}{
			"type":        "LocalVarAssignment",
			"line":        n.Token.Line,
			"name":        n.Name,
			"declaration": n.Declaration,
			"value":       WalkAST(n.Value),
		}

	case *ast.Fun:
		return map[string]interface{}{
			"type":       "Fun",
			"line":       n.Token.Line,
			"name":       n.Name,
			"parameters": n.Parameters,
			"body":       WalkAST(n.Body),
		}

	case *ast.FunCall:
		args := make([]interface{}, len(n.Args))
		for i, arg := range n.Args {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":   "FunCall",
			"line":   n.Token.Line,
			"callee": WalkAST(n.Callee),
			"args":   args,
		}

	case *ast.Return:
		return map[string]interface{}{
			"type":  "Return",
			"line":  n.Token.Line,
			"value": WalkAST(n.Value),
		}

	case *ast.If:
		return map[string]interface{}{
			"type":        "If",
			"line":        n.Token.Line,
			"condition":   WalkAST(n.Condition),
			"consequence": WalkAST(n.Consequence),
			"alternative": WalkAST(n.Alternative),
		}

	case *ast.New:
		fields := make([]interface{}, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = map[string]interface{}{
				"name":  f.Name,
				"value": WalkAST(f.Value),
			}
		}
		return map[string]interface{}{
			"type":   "New",
			"line":   n.Token.Line,
			"fields": fields,
		}

	case *ast.FieldAccess:
		return map[string]interface{}{
			"type":     "FieldAccess",
			"line":     n.Token.Line,
			"receiver": WalkAST(n.Receiver),
			"name":     n.Name,
		}

	case *ast.FieldAssignment:
		return map[string]interface{}{
			"type":     "FieldAssignment",
			"line":     n.Token.Line,
			"receiver": WalkAST(n.Receiver),
			"name":     n.Name,
			"value":    WalkAST(n.Value),
		}

	case *ast.MethodCall:
		args := make([]interface{}, len(n.Args))
		for i, arg := range n.Args {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":     "MethodCall",
			"line":     n.Token.Line,
			"receiver": WalkAST(n.Receiver),
			"name":     n.Name,
			"args":     args,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

// WriteASTJSON renders the parsed tree as indented JSON.
func WriteASTJSON(w io.Writer, program *ast.Program) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(WalkAST(program)); err != nil {
		return fmt.Errorf("failed to encode JSON: %v", err)
	}
	return nil
}
