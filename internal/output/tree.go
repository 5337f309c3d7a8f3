// Package output renders the candidate list into the final Markdown document.
package output

import (
	"sort"
	"strings"

	"github.com/tmorand/promptctx/internal/types"
)

const (
	treeRootLine        = "."
	treeConnectorMiddle = "├── "
	treeConnectorLast   = "└── "
	treeIndentContinued = "│   "
	treeIndentFinished  = "    "
	treeDirectorySuffix = "/"
	treePathSeparator   = "/"
)

// treeNode is one entry of the hierarchy reconstructed from the candidate list.
type treeNode struct {
	name        string
	path        string
	isDirectory bool
}

// RenderTreeLines reconstructs the nested hierarchy implied by the candidate list
// and renders it as ASCII tree lines, starting with a line for the root itself.
// Every rendered directory has at least one admitted descendant; directories whose
// files were all excluded never appear. Output is deterministic for a fixed list:
// directories sort before files, names compare case-insensitively.
func RenderTreeLines(candidateFiles []types.CandidateFile) []string {
	childIndex := buildChildIndex(candidateFiles)
	lines := []string{treeRootLine}
	renderChildren(childIndex, "", "", &lines)
	return lines
}

// buildChildIndex derives every path prefix of every candidate and groups the
// resulting nodes by parent path. The index is built once so rendering never
// rescans the full node set.
func buildChildIndex(candidateFiles []types.CandidateFile) map[string][]treeNode {
	seenPaths := make(map[string]struct{})
	childIndex := make(map[string][]treeNode)

	for _, candidateFile := range candidateFiles {
		segments := strings.Split(candidateFile.RelativePath, treePathSeparator)
		parentPath := ""
		for segmentIndex, segmentName := range segments {
			nodePath := strings.Join(segments[:segmentIndex+1], treePathSeparator)
			if _, alreadySeen := seenPaths[nodePath]; !alreadySeen {
				seenPaths[nodePath] = struct{}{}
				childIndex[parentPath] = append(childIndex[parentPath], treeNode{
					name:        segmentName,
					path:        nodePath,
					isDirectory: segmentIndex < len(segments)-1,
				})
			}
			parentPath = nodePath
		}
	}

	for parentPath := range childIndex {
		sortTreeNodes(childIndex[parentPath])
	}
	return childIndex
}

// sortTreeNodes orders directories before files, then by case-insensitive name.
func sortTreeNodes(nodes []treeNode) {
	sort.Slice(nodes, func(firstIndex, secondIndex int) bool {
		firstNode, secondNode := nodes[firstIndex], nodes[secondIndex]
		if firstNode.isDirectory != secondNode.isDirectory {
			return firstNode.isDirectory
		}
		firstName := strings.ToLower(firstNode.name)
		secondName := strings.ToLower(secondNode.name)
		if firstName != secondName {
			return firstName < secondName
		}
		return firstNode.name < secondNode.name
	})
}

// renderChildren emits one line per child of parentPath and recurses into
// directory children with the accumulated indentation prefix.
func renderChildren(childIndex map[string][]treeNode, parentPath string, prefix string, lines *[]string) {
	children := childIndex[parentPath]
	for childPosition, childNode := range children {
		isLastChild := childPosition == len(children)-1
		connector := treeConnectorMiddle
		childIndent := treeIndentContinued
		if isLastChild {
			connector = treeConnectorLast
			childIndent = treeIndentFinished
		}
		displayName := childNode.name
		if childNode.isDirectory {
			displayName += treeDirectorySuffix
		}
		*lines = append(*lines, prefix+connector+displayName)
		if childNode.isDirectory {
			renderChildren(childIndex, childNode.path, prefix+childIndent, lines)
		}
	}
}
