package render

// Positions arrive in canvas pixels (origin top-left, y down) and are
// mapped to clip space here. u_pointsize is a radius, so the sprite is
// twice as wide.
const vertexSource = `
attribute vec2 a_coords;
attribute vec3 a_color;
uniform float u_width;
uniform float u_height;
uniform float u_pointsize;
varying vec3 v_color;
void main() {
	float x = -1.0 + 2.0 * (a_coords.x / u_width);
	float y = 1.0 - 2.0 * (a_coords.y / u_height);
	gl_Position = vec4(x, y, 0.0, 1.0);
	gl_PointSize = 2.0 * u_pointsize;
	v_color = a_color;
}
`

const fragmentSource = `
precision mediump float;
varying vec3 v_color;
void main() {
	if (distance(gl_PointCoord, vec2(0.5)) > 0.5) {
		discard;
	}
	gl_FragColor = vec4(v_color, 1.0);
}
`
